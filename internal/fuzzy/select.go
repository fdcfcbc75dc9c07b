package fuzzy

import (
	"time"

	"github.com/tabwise/tabwise/internal/terrors"
)

// Options tunes strategy construction in Select.
type Options struct {
	MaxDistance   int
	HelperCommand string
	HelperTimeout time.Duration
}

// Select returns the scorer for a configured strategy name. An unknown
// name returns the reference scorer together with a ConfigMismatchError
// so the caller can warn and continue.
func Select(strategy string, opts Options) (Scorer, error) {
	switch strategy {
	case "", StrategySubsequence:
		return NewSubsequenceScorer(), nil
	case StrategyEditDist:
		return NewLevenshteinScorer(opts.MaxDistance), nil
	case StrategyExternal:
		return NewExternalScorer(opts.HelperCommand, opts.HelperTimeout), nil
	default:
		return NewSubsequenceScorer(), terrors.NewConfigMismatch(
			"fuzzy.strategy", strategy, "unknown fuzzy strategy")
	}
}
