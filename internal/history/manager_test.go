package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider serves a fixed newest-first entry list.
type fakeProvider struct {
	name      string
	entries   []Entry
	available bool
}

func (f *fakeProvider) Name() string { return f.name }
func (f *fakeProvider) Search(query string, opts SearchOptions) []Entry {
	return searchEntries(f.entries, query, opts)
}
func (f *fakeProvider) Add(Entry) error          { return nil }
func (f *fakeProvider) Recent(limit int) []Entry { return truncate(f.entries, limit) }
func (f *fakeProvider) All() []Entry             { return f.entries }
func (f *fakeProvider) Available() bool          { return f.available }
func (f *fakeProvider) Stats() Stats             { return statsFor(f.entries) }

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("unified")
	require.NoError(t, err)
	assert.Equal(t, ModeUnified, mode)

	mode, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeSolo, mode)

	mode, err = ParseMode("turbo")
	require.Error(t, err)
	assert.Equal(t, ModeSolo, mode, "unknown mode falls back to solo")
}

func TestManager_UnifiedMergeDedup(t *testing.T) {
	a := &fakeProvider{name: "a", available: true, entries: []Entry{
		{Command: "ls", Timestamp: 100, Source: "a"},
	}}
	b := &fakeProvider{name: "b", available: true, entries: []Entry{
		{Command: "pwd", Timestamp: 90, Source: "b"},
		{Command: "ls", Timestamp: 50, Source: "b"},
	}}

	m := NewManager(ModeUnified, nil, nil, []Provider{a, b}, nil)

	got := m.Search("", SearchOptions{Deduplicate: true})
	require.Len(t, got, 2)
	assert.Equal(t, "ls", got[0].Command)
	assert.Equal(t, int64(100), got[0].Timestamp, "newest ls wins")
	assert.Equal(t, "a", got[0].Source)
	assert.Equal(t, "pwd", got[1].Command)
}

func TestManager_UntimestampedSortLast(t *testing.T) {
	dated := &fakeProvider{name: "dated", available: true, entries: []Entry{
		{Command: "new", Timestamp: 200},
		{Command: "old", Timestamp: 10},
	}}
	undated := &fakeProvider{name: "undated", available: true, entries: []Entry{
		{Command: "first-bare"},
		{Command: "second-bare"},
	}}

	m := NewManager(ModeUnified, nil, nil, []Provider{undated, dated}, nil)

	got := m.Search("", SearchOptions{Deduplicate: true})
	require.Len(t, got, 4)
	assert.Equal(t, "new", got[0].Command)
	assert.Equal(t, "old", got[1].Command)
	// Untimestamped entries keep their provider-then-original order.
	assert.Equal(t, "first-bare", got[2].Command)
	assert.Equal(t, "second-bare", got[3].Command)
}

func TestManager_MergeIdempotent(t *testing.T) {
	a := &fakeProvider{name: "a", available: true, entries: []Entry{
		{Command: "tie-one"},
		{Command: "tie-two"},
		{Command: "dated", Timestamp: 5},
	}}

	m := NewManager(ModeUnified, nil, nil, []Provider{a}, nil)

	first := m.Search("", SearchOptions{Deduplicate: true})
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Search("", SearchOptions{Deduplicate: true}))
	}
}

func TestManager_SoloIgnoresNative(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "h.jsonl"), 0, 0)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Add(Entry{Command: "owned-cmd"}))

	native := &fakeProvider{name: "bash", available: true, entries: []Entry{
		{Command: "native-cmd", Timestamp: 999},
	}}

	m := NewManager(ModeSolo, store, native, []Provider{native}, nil)

	got := m.Search("", SearchOptions{Deduplicate: true})
	require.Len(t, got, 1)
	assert.Equal(t, "owned-cmd", got[0].Command)
	assert.Equal(t, []string{SourceOwned}, m.Sources())
}

func TestManager_ShellModeSkipsUnavailable(t *testing.T) {
	unavailable := &fakeProvider{name: "zsh", available: false}
	m := NewManager(ModeShell, nil, unavailable, nil, nil)

	assert.Empty(t, m.Search("", SearchOptions{}))
	assert.Empty(t, m.Sources())
}

func TestManager_AddWritesOwnedStoreOnly(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "h.jsonl"), 0, 0)
	t.Cleanup(func() { _ = store.Close() })

	native := &fakeProvider{name: "bash", available: true}
	m := NewManager(ModeUnified, store, native, []Provider{native}, nil)

	require.NoError(t, m.Add(Entry{Command: "recorded"}))
	assert.Len(t, store.All(), 1)
	assert.Empty(t, native.entries, "native logs never mutated")
}

func TestManager_StatsAggregates(t *testing.T) {
	a := &fakeProvider{name: "a", available: true, entries: []Entry{
		{Command: "ls", Cwd: "/home"},
		{Command: "ls"},
	}}
	b := &fakeProvider{name: "b", available: true, entries: []Entry{
		{Command: "ls"},
		{Command: "pwd"},
	}}

	m := NewManager(ModeUnified, nil, nil, []Provider{a, b}, nil)

	stats := m.Stats()
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Unique)
	assert.Equal(t, 3, stats.Frequency["ls"])
	assert.Equal(t, 1, stats.ByDir["/home"])
}

func TestManager_Limit(t *testing.T) {
	a := &fakeProvider{name: "a", available: true, entries: []Entry{
		{Command: "c3", Timestamp: 300},
		{Command: "c2", Timestamp: 200},
		{Command: "c1", Timestamp: 100},
	}}
	m := NewManager(ModeUnified, nil, nil, []Provider{a}, nil)

	got := m.Search("", SearchOptions{Limit: 2, Deduplicate: true})
	require.Len(t, got, 2)
	assert.Equal(t, "c3", got[0].Command)
}
