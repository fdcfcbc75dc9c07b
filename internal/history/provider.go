package history

import "sort"

// SearchOptions tunes a provider search.
type SearchOptions struct {
	// Limit bounds the result count; <= 0 means unbounded.
	Limit int
	// Deduplicate keeps only the most recent occurrence of each exact
	// command string.
	Deduplicate bool
}

// Stats summarizes a provider's backing store.
type Stats struct {
	Total     int
	Unique    int
	Frequency map[string]int
	// ByDir counts commands per recorded working directory; empty for
	// formats that do not track directories.
	ByDir map[string]int
}

// CommandCount pairs a command with how often it was run.
type CommandCount struct {
	Command string
	Count   int
}

// Top returns the n most frequent commands, ties broken alphabetically
// so the order is reproducible.
func (s Stats) Top(n int) []CommandCount {
	counts := make([]CommandCount, 0, len(s.Frequency))
	for cmd, c := range s.Frequency {
		counts = append(counts, CommandCount{Command: cmd, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Command < counts[j].Command
	})
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// Provider is one source of historical commands backed by a specific
// on-disk format. Shell-native providers are read-only: their Add is a
// no-op. All read methods recover parse and I/O problems internally
// and return what they could read; a missing or unreadable file is an
// empty result, reported through Available.
type Provider interface {
	// Name returns the provider's source tag.
	Name() string
	// Search returns recency-ordered entries whose command contains
	// query; an empty query returns the most recent entries.
	Search(query string, opts SearchOptions) []Entry
	// Add records a new entry. No-op for read-only providers.
	Add(entry Entry) error
	// Recent returns the most recent entries, newest first.
	Recent(limit int) []Entry
	// All returns every entry, newest first.
	All() []Entry
	// Available reports whether the backing store exists and is
	// readable.
	Available() bool
	// Stats summarizes the backing store.
	Stats() Stats
}

// searchEntries implements the shared Search contract over a
// newest-first entry list.
func searchEntries(entries []Entry, query string, opts SearchOptions) []Entry {
	result := filterSubstring(entries, query)
	if opts.Deduplicate {
		result = dedupeByCommand(result)
	}
	return truncate(result, opts.Limit)
}

// statsFor computes Stats over a provider's full entry list.
func statsFor(entries []Entry) Stats {
	s := Stats{
		Total:     len(entries),
		Frequency: make(map[string]int),
		ByDir:     make(map[string]int),
	}
	for _, e := range entries {
		s.Frequency[e.Command]++
		if e.Cwd != "" {
			s.ByDir[e.Cwd]++
		}
	}
	s.Unique = len(s.Frequency)
	return s
}
