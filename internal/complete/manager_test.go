package complete

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabwise/tabwise/internal/fuzzy"
	"github.com/tabwise/tabwise/internal/history"
	"github.com/tabwise/tabwise/internal/token"
)

// mockBackend serves a fixed candidate list, self-filtered by prefix
// unless raw is set, and counts Resolve invocations.
type mockBackend struct {
	candidates []Candidate
	calls      int
	raw        bool
}

func (m *mockBackend) Name() string       { return "mock" }
func (m *mockBackend) Init() error        { return nil }
func (m *mockBackend) Builtins() []string { return nil }

func (m *mockBackend) Resolve(ctx token.Context) []Candidate {
	m.calls++
	if m.raw {
		return m.candidates
	}
	prefix := token.Unquote(ctx.CurrentWord)
	var out []Candidate
	for _, c := range m.candidates {
		if strings.HasPrefix(c.Text, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// failingScorer always reports its strategy unavailable.
type failingScorer struct{}

func (failingScorer) Name() string    { return "failing" }
func (failingScorer) Available() bool { return false }
func (failingScorer) Rank(string, []string) ([]fuzzy.Result, error) {
	return nil, errors.New("helper missing")
}

func TestManager_CacheHitSkipsBackend(t *testing.T) {
	backend := &mockBackend{candidates: []Candidate{
		{Text: "foo", Priority: PriorityExecutable},
	}}
	m := NewManager(backend, nil, nil, Options{CacheTTL: time.Minute}, nil)

	clock := time.Now()
	m.cache.now = func() time.Time { return clock }

	ctx := token.Classify("fo", 2, "/work")
	first := m.Complete(ctx)
	second := m.Complete(ctx)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, backend.calls, "second call served from cache")

	clock = clock.Add(2 * time.Minute)
	m.Complete(ctx)
	assert.Equal(t, 2, backend.calls, "expired entry recomputed")
}

func TestManager_CacheKeyedByWorkDir(t *testing.T) {
	backend := &mockBackend{}
	m := NewManager(backend, nil, nil, Options{}, nil)

	m.Complete(token.Classify("fo", 2, "/a"))
	m.Complete(token.Classify("fo", 2, "/b"))
	assert.Equal(t, 2, backend.calls)
}

func TestManager_PrioritySortWithoutFuzzy(t *testing.T) {
	backend := &mockBackend{candidates: []Candidate{
		{Text: "foobar", Priority: PriorityExecutable},
		{Text: "foo", Priority: PriorityExecutable},
		{Text: "fob", Priority: PriorityBuiltin},
	}}
	m := NewManager(backend, nil, nil, Options{}, nil)

	got := m.Complete(token.Classify("fo", 2, "/work"))
	require.Len(t, got, 3)
	assert.Equal(t, "fob", got[0].Text, "higher priority first")
	assert.Equal(t, "foo", got[1].Text, "ties break alphabetically")
	assert.Equal(t, "foobar", got[2].Text)
}

func TestManager_FuzzyDropsNonMatches(t *testing.T) {
	backend := &mockBackend{raw: true, candidates: []Candidate{
		{Text: "gitk", Priority: PriorityExecutable},
		{Text: "git", Priority: PriorityExecutable},
		{Text: "xyz", Priority: PriorityBuiltin},
	}}
	m := NewManager(backend, nil, fuzzy.NewSubsequenceScorer(),
		Options{Fuzzy: true}, nil)

	got := m.Complete(token.Classify("git", 3, "/work"))
	require.Len(t, got, 2, "zero-score candidate excluded")
	assert.Equal(t, "git", got[0].Text, "exact match above prefix match")
	assert.Equal(t, "gitk", got[1].Text)
}

func TestManager_FuzzyUnavailableFallsBack(t *testing.T) {
	backend := &mockBackend{candidates: []Candidate{
		{Text: "grep", Priority: PriorityExecutable},
	}}
	m := NewManager(backend, nil, failingScorer{}, Options{Fuzzy: true}, nil)

	got := m.Complete(token.Classify("gr", 2, "/work"))
	require.Len(t, got, 1, "reference scorer takes over silently")
	assert.Equal(t, "grep", got[0].Text)
}

func TestManager_HistoryCandidatesForCommandSlot(t *testing.T) {
	store := history.NewStore(filepath.Join(t.TempDir(), "h.jsonl"), 0, 0)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Add(history.Entry{Command: "make install", Timestamp: 100}))
	require.NoError(t, store.Add(history.Entry{Command: "make test", Timestamp: 200}))

	hist := history.NewManager(history.ModeSolo, store, nil, nil, nil)
	backend := &mockBackend{candidates: []Candidate{
		{Text: "make", Priority: PriorityExecutable},
	}}
	m := NewManager(backend, hist, nil, Options{}, nil)

	got := m.Complete(token.Classify("make", 4, "/work"))
	require.Len(t, got, 3)

	assert.Equal(t, "make test", got[0].Text, "most recent history entry ranks highest")
	assert.Equal(t, CategoryHistory, got[0].Category)
	assert.Equal(t, PriorityHistoryMax, got[0].Priority)
	assert.Equal(t, "make install", got[1].Text)
	assert.Equal(t, PriorityHistoryMax-1, got[1].Priority)
	assert.Equal(t, "make", got[2].Text, "backend candidate after history")
}

func TestManager_HistorySkippedForArgumentSlot(t *testing.T) {
	store := history.NewStore(filepath.Join(t.TempDir(), "h.jsonl"), 0, 0)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Add(history.Entry{Command: "status report"}))

	hist := history.NewManager(history.ModeSolo, store, nil, nil, nil)
	backend := &mockBackend{candidates: []Candidate{
		{Text: "status", Priority: PrioritySubcommand},
	}}
	m := NewManager(backend, hist, nil, Options{}, nil)

	got := m.Complete(token.Classify("git stat", 8, "/work"))
	require.Len(t, got, 1)
	assert.Equal(t, "status", got[0].Text)
}

func TestManager_MaxSuggestionsTruncates(t *testing.T) {
	var candidates []Candidate
	for _, text := range []string{"aa", "ab", "ac", "ad", "ae"} {
		candidates = append(candidates, Candidate{Text: text, Priority: PriorityFile})
	}
	m := NewManager(&mockBackend{candidates: candidates}, nil, nil,
		Options{MaxSuggestions: 3}, nil)

	got := m.Complete(token.Classify("a", 1, "/work"))
	assert.Len(t, got, 3)
}

func TestManager_CompleteLineClassifies(t *testing.T) {
	m := NewManager(&mockBackend{}, nil, nil, Options{}, nil)

	_, ctx := m.CompleteLine("git chec", 8, "/work")
	assert.Equal(t, token.SlotArgument, ctx.Slot)
	assert.Equal(t, "git", ctx.CommandName)
	assert.Equal(t, "chec", ctx.CurrentWord)
}

func TestManager_InvalidateCache(t *testing.T) {
	backend := &mockBackend{}
	m := NewManager(backend, nil, nil, Options{}, nil)

	ctx := token.Classify("ls", 2, "/work")
	m.Complete(ctx)
	m.InvalidateCache()
	m.Complete(ctx)
	assert.Equal(t, 2, backend.calls)
}

func TestCandidate_Label(t *testing.T) {
	assert.Equal(t, "ls", Candidate{Text: "ls"}.Label())
	assert.Equal(t, "1234 (vim)", Candidate{Text: "1234", Display: "1234 (vim)"}.Label())
}
