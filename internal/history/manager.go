package history

import (
	"github.com/tabwise/tabwise/internal/logger"
	"github.com/tabwise/tabwise/internal/terrors"
)

// Mode selects which providers the manager composes.
type Mode string

// Composition modes.
const (
	// ModeSolo uses the owned store only.
	ModeSolo Mode = "solo"
	// ModeShell uses only the detected native shell's provider.
	ModeShell Mode = "shell"
	// ModeUnified merges the owned store with every active native
	// provider.
	ModeUnified Mode = "unified"
)

// ParseMode maps a configured mode name to a Mode. Unknown names fall
// back to solo with a ConfigMismatchError for the caller to warn on.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case ModeSolo, ModeShell, ModeUnified:
		return Mode(name), nil
	case "":
		return ModeSolo, nil
	default:
		return ModeSolo, terrors.NewConfigMismatch("history.mode", name, "unknown history mode")
	}
}

// Manager composes the owned store with shell-native providers under a
// configured mode and merges their results into one recency-ordered
// view.
type Manager struct {
	mode   Mode
	store  *Store
	shell  Provider   // detected native shell's provider, may be nil
	native []Provider // all native providers, for unified mode
	log    *logger.Logger
}

// NewManager creates a history manager. shellProvider may be nil when
// no native shell was detected; native lists every enabled native
// provider for unified mode.
func NewManager(mode Mode, store *Store, shellProvider Provider, native []Provider, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		mode:   mode,
		store:  store,
		shell:  shellProvider,
		native: native,
		log:    log,
	}
}

// Mode returns the active composition mode.
func (m *Manager) Mode() Mode { return m.mode }

// active returns the providers participating under the current mode.
// Unavailable providers are skipped; a missing source contributes
// nothing rather than failing the request.
func (m *Manager) active() []Provider {
	var providers []Provider
	switch m.mode {
	case ModeShell:
		if m.shell != nil && m.shell.Available() {
			providers = append(providers, m.shell)
		}
	case ModeUnified:
		if m.store != nil {
			providers = append(providers, m.store)
		}
		for _, p := range m.native {
			if p.Available() {
				providers = append(providers, p)
			}
		}
	default: // ModeSolo
		if m.store != nil {
			providers = append(providers, m.store)
		}
	}
	return providers
}

// Search merges provider results: concatenate, stable-sort by
// timestamp descending with untimestamped entries last, deduplicate by
// exact command text keeping the most recent occurrence, truncate.
func (m *Manager) Search(query string, opts SearchOptions) []Entry {
	var merged []Entry
	for _, p := range m.active() {
		// Per-provider dedup is deferred to the cross-provider pass.
		merged = append(merged, p.Search(query, SearchOptions{Limit: opts.Limit})...)
	}

	sortByRecency(merged)
	if opts.Deduplicate {
		merged = dedupeByCommand(merged)
	}
	merged = truncate(merged, opts.Limit)

	m.log.Debug().
		Str("query", query).
		Str("mode", string(m.mode)).
		Int("results", len(merged)).
		Msg("history search")

	return merged
}

// Recent returns the most recent merged entries.
func (m *Manager) Recent(limit int) []Entry {
	return m.Search("", SearchOptions{Limit: limit, Deduplicate: true})
}

// Add records a command. Writes go to the owned store only;
// shell-native logs are never mutated.
func (m *Manager) Add(entry Entry) error {
	if m.store == nil {
		return nil
	}
	return m.store.Add(entry)
}

// Stats aggregates statistics across the active providers.
func (m *Manager) Stats() Stats {
	agg := Stats{
		Frequency: make(map[string]int),
		ByDir:     make(map[string]int),
	}
	for _, p := range m.active() {
		s := p.Stats()
		agg.Total += s.Total
		for cmd, c := range s.Frequency {
			agg.Frequency[cmd] += c
		}
		for dir, c := range s.ByDir {
			agg.ByDir[dir] += c
		}
	}
	agg.Unique = len(agg.Frequency)
	return agg
}

// Sources lists the names of the providers active under the current
// mode.
func (m *Manager) Sources() []string {
	var names []string
	for _, p := range m.active() {
		names = append(names, p.Name())
	}
	return names
}
