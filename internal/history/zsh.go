package history

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// zshExtendedLine matches the EXTENDED_HISTORY marker:
// ": <epoch-seconds>:<duration-seconds>;<command>".
var zshExtendedLine = regexp.MustCompile(`^: (\d+):(\d+);(.*)$`)

// ZshProvider reads a zsh history file in extended format. Lines not
// matching the extended marker continue the previous command; bare
// lines with no marker at all are accepted as unannotated legacy
// entries.
type ZshProvider struct {
	path string
}

// NewZshProvider creates a read-only provider over a zsh history file.
func NewZshProvider(path string) *ZshProvider {
	return &ZshProvider{path: path}
}

// Name implements Provider.
func (z *ZshProvider) Name() string { return SourceZsh }

// Available implements Provider.
func (z *ZshProvider) Available() bool { return readableFile(z.path) }

// Add implements Provider. Zsh history is externally managed.
func (z *ZshProvider) Add(Entry) error { return nil }

// Search implements Provider.
func (z *ZshProvider) Search(query string, opts SearchOptions) []Entry {
	return searchEntries(z.load(), query, opts)
}

// Recent implements Provider.
func (z *ZshProvider) Recent(limit int) []Entry {
	return truncate(z.load(), limit)
}

// All implements Provider.
func (z *ZshProvider) All() []Entry { return z.load() }

// Stats implements Provider.
func (z *ZshProvider) Stats() Stats { return statsFor(z.load()) }

func (z *ZshProvider) load() []Entry {
	file, err := os.Open(z.path)
	if err != nil {
		return nil
	}
	defer func() { _ = file.Close() }()

	var entries []Entry
	var current *Entry
	continuing := false

	flush := func() {
		if current != nil && current.Command != "" {
			entries = append(entries, *current)
		}
		current = nil
		continuing = false
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if m := zshExtendedLine.FindStringSubmatch(line); m != nil {
			flush()
			epoch, _ := strconv.ParseInt(m[1], 10, 64)
			durSec, _ := strconv.ParseInt(m[2], 10, 64)
			current = &Entry{
				Command:   strings.TrimSuffix(m[3], "\\"),
				Timestamp: epoch * 1000,
				Duration:  durSec * 1000,
				Source:    SourceZsh,
			}
			if strings.HasSuffix(m[3], "\\") {
				current.Command += "\n"
				continuing = true
			}
			continue
		}

		if current != nil && continuing {
			// Continuation of the previous extended entry's text.
			current.Command += strings.TrimSuffix(line, "\\")
			if strings.HasSuffix(line, "\\") {
				current.Command += "\n"
			} else {
				continuing = false
			}
			continue
		}

		flush()
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Legacy entry with no marker: command only.
		entries = append(entries, Entry{Command: line, Source: SourceZsh})
	}
	flush()

	reverseEntries(entries)
	return entries
}
