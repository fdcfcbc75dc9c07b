package fuzzy

import "strings"

// DefaultMaxDistance is the edit-distance cutoff beyond which a pair is
// considered unrelated.
const DefaultMaxDistance = 2

// LevenshteinScorer scores by edit distance: 1 - distance/max(len(q),
// len(t)), rejecting pairs whose distance exceeds MaxDistance. It
// tolerates transposition typos ("gti" for "git") that the subsequence
// walk cannot match.
type LevenshteinScorer struct {
	MaxDistance int
}

// NewLevenshteinScorer creates an edit-distance scorer with the given
// cutoff; zero or negative means DefaultMaxDistance.
func NewLevenshteinScorer(maxDistance int) *LevenshteinScorer {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	return &LevenshteinScorer{MaxDistance: maxDistance}
}

// Name implements Scorer.
func (l *LevenshteinScorer) Name() string { return StrategyEditDist }

// Available implements Scorer.
func (l *LevenshteinScorer) Available() bool { return true }

// Score returns the edit-distance score for one pair. Spans are not
// tracked by this strategy.
func (l *LevenshteinScorer) Score(query, text string) (float64, []Span) {
	if query == "" || text == "" {
		return 0, nil
	}

	q := []rune(strings.ToLower(query))
	t := []rune(strings.ToLower(text))

	dist := levenshtein(q, t)
	if dist > l.MaxDistance {
		return 0, nil
	}

	longest := len(q)
	if len(t) > longest {
		longest = len(t)
	}

	score := 1 - float64(dist)/float64(longest)
	if score <= 0 {
		return 0, nil
	}
	return score, nil
}

// Rank implements Scorer.
func (l *LevenshteinScorer) Rank(query string, texts []string) ([]Result, error) {
	return rankWithScoreFunc(query, texts, l.Score), nil
}

// levenshtein computes edit distance with the classic two-row dynamic
// program.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
