package complete

import (
	"sort"
	"time"

	"github.com/tabwise/tabwise/internal/fuzzy"
	"github.com/tabwise/tabwise/internal/history"
	"github.com/tabwise/tabwise/internal/logger"
	"github.com/tabwise/tabwise/internal/timing"
	"github.com/tabwise/tabwise/internal/token"
)

// DefaultMaxSuggestions bounds a result list when the configuration
// does not say otherwise.
const DefaultMaxSuggestions = 50

// Options configures a Manager. Zero values pick the documented
// defaults.
type Options struct {
	// CacheTTL is the validity window of cached results.
	CacheTTL time.Duration
	// MaxSuggestions bounds the returned list.
	MaxSuggestions int
	// Fuzzy enables fuzzy re-ranking of candidates.
	Fuzzy bool
}

// Manager is the top-level completion orchestrator. It owns the TTL
// result cache and composes the shell backend, the history manager and
// the fuzzy ranker into one pipeline.
type Manager struct {
	backend  Backend
	history  *history.Manager
	scorer   fuzzy.Scorer
	fallback fuzzy.Scorer
	cache    *resultCache
	opts     Options
	log      *logger.Logger
}

// NewManager creates a completion manager. history and scorer may be
// nil; a nil scorer disables fuzzy ranking regardless of opts.Fuzzy.
func NewManager(backend Backend, hist *history.Manager, scorer fuzzy.Scorer, opts Options, log *logger.Logger) *Manager {
	if opts.MaxSuggestions <= 0 {
		opts.MaxSuggestions = DefaultMaxSuggestions
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		backend:  backend,
		history:  hist,
		scorer:   scorer,
		fallback: fuzzy.NewSubsequenceScorer(),
		cache:    newResultCache(opts.CacheTTL),
		opts:     opts,
		log:      log,
	}
}

// CompleteLine classifies a raw line and cursor, then completes it.
func (m *Manager) CompleteLine(line string, cursor int, workDir string) ([]Candidate, token.Context) {
	ctx := token.Classify(line, cursor, workDir)
	return m.Complete(ctx), ctx
}

// Complete returns the ranked candidate list for a classified context.
// Results are cached by (word, command, slot, workDir) for the
// configured TTL; a hit skips the backends entirely.
func (m *Manager) Complete(ctx token.Context) []Candidate {
	key := cacheKey{
		word:    ctx.CurrentWord,
		command: ctx.CommandName,
		slot:    string(ctx.Slot),
		workDir: ctx.WorkDir,
	}

	if cached, ok := m.cache.get(key); ok {
		m.log.Debug().Str("word", ctx.CurrentWord).Msg("completion cache hit")
		return cached
	}

	timer := timing.NewTimer()

	candidates := m.backend.Resolve(ctx)
	timer.Mark("backend")

	if ctx.Slot == token.SlotCommand && m.history != nil {
		candidates = append(candidates, m.historyCandidates(ctx)...)
		timer.Mark("history")
	}

	query := token.Unquote(ctx.CurrentWord)
	if m.opts.Fuzzy && m.scorer != nil && query != "" {
		candidates = m.rank(query, candidates)
	} else {
		sortByPriority(candidates)
	}
	timer.Mark("rank")

	if len(candidates) > m.opts.MaxSuggestions {
		candidates = candidates[:m.opts.MaxSuggestions]
	}

	m.cache.set(key, candidates)

	m.log.Debug().
		Str("word", ctx.CurrentWord).
		Str("slot", string(ctx.Slot)).
		Int("candidates", len(candidates)).
		Str("timing", timer.Summary()).
		Msg("completion computed")

	return candidates
}

// historyCandidates converts matching history entries into candidates.
// The most recent entry ranks highest: priority 100 - rankIndex.
func (m *Manager) historyCandidates(ctx token.Context) []Candidate {
	entries := m.history.Search(token.Unquote(ctx.CurrentWord), history.SearchOptions{
		Limit:       m.opts.MaxSuggestions,
		Deduplicate: true,
	})

	candidates := make([]Candidate, 0, len(entries))
	for i, e := range entries {
		candidates = append(candidates, Candidate{
			Text:        e.Command,
			Description: "history (" + e.Source + ")",
			Category:    CategoryHistory,
			Priority:    PriorityHistoryMax - i,
			Metadata:    map[string]string{"source": e.Source},
		})
	}
	return candidates
}

// rank applies the fuzzy scorer and keeps its order. A failing
// external strategy falls back to the reference algorithm; ranking
// never errors the request.
func (m *Manager) rank(query string, candidates []Candidate) []Candidate {
	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Text
	}

	results, err := m.scorer.Rank(query, texts)
	if err != nil {
		m.log.Debug().
			Str("strategy", m.scorer.Name()).
			Err(err).
			Msg("fuzzy strategy unavailable, using reference scorer")
		results, _ = m.fallback.Rank(query, texts)
	}

	ranked := make([]Candidate, 0, len(results))
	for _, r := range results {
		ranked = append(ranked, candidates[r.Index])
	}
	return ranked
}

// sortByPriority orders candidates by priority descending, text
// ascending. Stable so equal entries keep their source order.
func sortByPriority(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority > candidates[j].Priority
		}
		return candidates[i].Text < candidates[j].Text
	})
}

// InvalidateCache drops every cached result.
func (m *Manager) InvalidateCache() {
	m.cache.clear()
}
