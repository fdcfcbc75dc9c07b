package history

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// bashTimestampLine matches the HISTTIMEFORMAT metadata markers bash
// writes between commands, e.g. "#1700000000".
var bashTimestampLine = regexp.MustCompile(`^#\d+$`)

// BashProvider reads ~/.bash_history. Timestamp marker lines are
// recognized and discarded; they are not attached to the following
// command, so bash entries carry no timestamps. Known limitation of
// the format handling, kept deliberate rather than guessed around.
type BashProvider struct {
	path string
}

// NewBashProvider creates a read-only provider over a bash history file.
func NewBashProvider(path string) *BashProvider {
	return &BashProvider{path: path}
}

// Name implements Provider.
func (b *BashProvider) Name() string { return SourceBash }

// Available implements Provider.
func (b *BashProvider) Available() bool { return readableFile(b.path) }

// Add implements Provider. Bash history is externally managed; never
// written by this system.
func (b *BashProvider) Add(Entry) error { return nil }

// Search implements Provider.
func (b *BashProvider) Search(query string, opts SearchOptions) []Entry {
	return searchEntries(b.load(), query, opts)
}

// Recent implements Provider.
func (b *BashProvider) Recent(limit int) []Entry {
	return truncate(b.load(), limit)
}

// All implements Provider.
func (b *BashProvider) All() []Entry { return b.load() }

// Stats implements Provider.
func (b *BashProvider) Stats() Stats { return statsFor(b.load()) }

// load parses the file and returns entries newest first. Any read
// failure yields an empty list.
func (b *BashProvider) load() []Entry {
	file, err := os.Open(b.path)
	if err != nil {
		return nil
	}
	defer func() { _ = file.Close() }()

	var entries []Entry
	var continued strings.Builder
	joining := false

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if !joining && bashTimestampLine.MatchString(line) {
			continue
		}

		if strings.HasSuffix(line, "\\") {
			continued.WriteString(strings.TrimSuffix(line, "\\"))
			continued.WriteByte('\n')
			joining = true
			continue
		}

		if joining {
			continued.WriteString(line)
			line = continued.String()
			continued.Reset()
			joining = false
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Entry{Command: line, Source: SourceBash})
	}

	if joining && continued.Len() > 0 {
		entries = append(entries, Entry{
			Command: strings.TrimSuffix(continued.String(), "\n"),
			Source:  SourceBash,
		})
	}

	reverseEntries(entries)
	return entries
}

// readableFile reports whether path exists and opens for reading.
func readableFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = file.Close()
	return true
}

// reverseEntries flips chronological order into newest-first.
func reverseEntries(entries []Entry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
