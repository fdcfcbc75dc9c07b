package history

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// FishProvider reads fish's structured history file. Record blocks
// begin with a "- cmd:" introducer, optionally followed by a "when:"
// epoch line, a "paths:" list of associated working directories, and
// further indented lines continuing a multi-line command.
type FishProvider struct {
	path string
}

// NewFishProvider creates a read-only provider over a fish history file.
func NewFishProvider(path string) *FishProvider {
	return &FishProvider{path: path}
}

// Name implements Provider.
func (f *FishProvider) Name() string { return SourceFish }

// Available implements Provider.
func (f *FishProvider) Available() bool { return readableFile(f.path) }

// Add implements Provider. Fish history is externally managed.
func (f *FishProvider) Add(Entry) error { return nil }

// Search implements Provider.
func (f *FishProvider) Search(query string, opts SearchOptions) []Entry {
	return searchEntries(f.load(), query, opts)
}

// Recent implements Provider.
func (f *FishProvider) Recent(limit int) []Entry {
	return truncate(f.load(), limit)
}

// All implements Provider.
func (f *FishProvider) All() []Entry { return f.load() }

// Stats implements Provider.
func (f *FishProvider) Stats() Stats { return statsFor(f.load()) }

func (f *FishProvider) load() []Entry {
	file, err := os.Open(f.path)
	if err != nil {
		return nil
	}
	defer func() { _ = file.Close() }()

	var entries []Entry
	var current *Entry
	inPaths := false

	flush := func() {
		if current != nil && current.Command != "" {
			entries = append(entries, *current)
		}
		current = nil
		inPaths = false
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if cmd, ok := strings.CutPrefix(line, "- cmd: "); ok {
			flush()
			current = &Entry{Command: unescapeFish(cmd), Source: SourceFish}
			continue
		}
		if current == nil {
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "when: "):
			epoch, err := strconv.ParseInt(strings.TrimPrefix(trimmed, "when: "), 10, 64)
			if err == nil {
				current.Timestamp = epoch * 1000
			}
			inPaths = false
		case trimmed == "paths:":
			inPaths = true
		case inPaths && strings.HasPrefix(trimmed, "- "):
			// First associated directory wins as the entry's cwd; the
			// rest land in metadata.
			dir := strings.TrimPrefix(trimmed, "- ")
			if current.Cwd == "" {
				current.Cwd = dir
			} else {
				if current.Metadata == nil {
					current.Metadata = make(map[string]string)
				}
				current.Metadata["paths"] += ":" + dir
			}
		case strings.HasPrefix(line, "  ") && trimmed != "":
			// Indented continuation of a multi-line command.
			current.Command += "\n" + trimmed
			inPaths = false
		}
	}
	flush()

	reverseEntries(entries)
	return entries
}

// unescapeFish resolves the backslash escapes fish uses inside cmd
// values.
func unescapeFish(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	return strings.ReplaceAll(s, `\\`, `\`)
}
