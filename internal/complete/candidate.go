// Package complete orchestrates the completion pipeline: classify the
// word under the cursor, gather raw candidates from the active shell
// backend and the history manager, rank them, and cache the result.
package complete

import "github.com/tabwise/tabwise/internal/token"

// Category classifies what a candidate completes to.
type Category string

// Candidate categories.
const (
	CategoryCommand   Category = "command"
	CategoryFile      Category = "file"
	CategoryDirectory Category = "directory"
	CategoryOption    Category = "option"
	CategoryArgument  Category = "argument"
	CategoryVariable  Category = "variable"
	CategoryHostname  Category = "hostname"
	CategoryHistory   Category = "history"
	CategoryOther     Category = "other"
)

// Priority conventions shared by all resolvers. History candidates are
// assigned up to PriorityHistoryMax by the manager.
const (
	PriorityBuiltin    = 10
	PriorityDirectory  = 9
	PrioritySubcommand = 8
	PriorityHostname   = 7
	PriorityProcess    = 7
	PriorityOption     = 6
	PriorityVariable   = 6
	PriorityExecutable = 5
	PriorityFile       = 3

	PriorityHistoryMax = 100
)

// Candidate is one proposed completion with ranking metadata. Text is
// never empty for a returned candidate.
type Candidate struct {
	// Text replaces the current word when accepted.
	Text string
	// Display is the human-facing label; empty means Text.
	Display string
	// Description is short free-form detail.
	Description string
	Category    Category
	// Priority ranks candidates when fuzzy ranking is off; higher
	// wins.
	Priority int
	// Metadata carries provider-specific detail.
	Metadata map[string]string
}

// Label returns the display string, falling back to Text.
func (c Candidate) Label() string {
	if c.Display != "" {
		return c.Display
	}
	return c.Text
}

// Backend produces raw completion candidates for a classified slot.
// Resolve always self-filters by prefix of the context's current word:
// callers receive only candidates whose text starts with what was
// typed. Backends recover every failure internally; a source that
// cannot answer contributes nothing.
type Backend interface {
	// Name identifies the backend variant (generic, bash, zsh).
	Name() string
	// Init performs one-time detection work; calling Resolve first is
	// allowed and triggers it lazily.
	Init() error
	// Resolve returns slot-appropriate candidates for the context.
	Resolve(ctx token.Context) []Candidate
	// Builtins lists the shell's builtin command names.
	Builtins() []string
}
