// Package history reads and merges command history from several on-disk
// formats: the tool's own store plus the native logs of bash, zsh and
// fish. Native logs are read-only mirrors; only the owned store is ever
// written.
package history

import (
	"sort"
	"strings"
)

// Source tags identifying the originating provider of an entry.
const (
	SourceOwned = "tabwise"
	SourceBash  = "bash"
	SourceZsh   = "zsh"
	SourceFish  = "fish"
)

// Entry is one historical command in the common shape shared by all
// providers. Command is never empty for a returned entry. Timestamp is
// epoch milliseconds, zero when the backing format did not record one.
type Entry struct {
	Command   string            `json:"cmd"`
	Timestamp int64             `json:"ts,omitempty"`
	ExitCode  *int              `json:"exit,omitempty"`
	Cwd       string            `json:"cwd,omitempty"`
	Duration  int64             `json:"dur,omitempty"`
	Source    string            `json:"-"`
	Metadata  map[string]string `json:"meta,omitempty"`
}

// HasTimestamp reports whether the entry carries a known timestamp.
func (e Entry) HasTimestamp() bool { return e.Timestamp > 0 }

// sortByRecency orders entries newest first. Entries without a
// timestamp sort after all timestamped ones, keeping their relative
// input order (stable), so providers that cannot date their entries
// never outrank ones that can.
func sortByRecency(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := entries[i].Timestamp, entries[j].Timestamp
		if ti > 0 && tj > 0 {
			return ti > tj
		}
		return ti > 0 && tj <= 0
	})
}

// dedupeByCommand keeps only the first occurrence of each exact command
// string, scanning in order. With newest-first input this keeps the
// most recent occurrence.
func dedupeByCommand(entries []Entry) []Entry {
	seen := make(map[string]struct{}, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		if _, ok := seen[e.Command]; ok {
			continue
		}
		seen[e.Command] = struct{}{}
		out = append(out, e)
	}
	return out
}

// filterSubstring returns entries whose command contains query,
// case-insensitively. An empty query matches everything.
func filterSubstring(entries []Entry, query string) []Entry {
	if query == "" {
		return entries
	}
	q := strings.ToLower(query)
	out := entries[:0:0]
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Command), q) {
			out = append(out, e)
		}
	}
	return out
}

// truncate bounds a result list; limit <= 0 means unbounded.
func truncate(entries []Entry, limit int) []Entry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
