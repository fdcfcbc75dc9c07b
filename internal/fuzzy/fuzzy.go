// Package fuzzy scores candidate texts against a typed query. Three
// interchangeable strategies are provided: a subsequence scorer with
// boundary bonuses (the reference algorithm), an edit-distance scorer,
// and an external helper process that ranks but does not score.
package fuzzy

import (
	"sort"
	"strings"
)

// Strategy names accepted by Select.
const (
	StrategySubsequence = "subsequence"
	StrategyEditDist    = "editdistance"
	StrategyExternal    = "external"
)

// Span is an inclusive [Start, End] rune range matched in a candidate.
type Span struct {
	Start int
	End   int
}

// Result is one ranked candidate: its index in the input slice, a
// normalized score in [0,1], and the matched spans (nil when the
// strategy does not track positions).
type Result struct {
	Index int
	Score float64
	Spans []Span
}

// Scorer ranks candidate texts against a query. Rank returns only
// matching candidates, best first; a candidate that scores zero is
// excluded. Implementations must be deterministic: identical inputs
// yield identical ordering.
type Scorer interface {
	Name() string
	Available() bool
	Rank(query string, texts []string) ([]Result, error)
}

// SubsequenceScorer is the reference scoring algorithm.
//
// Scoring: exact case-insensitive equality 1.0; prefix 0.9; substring
// 0.8; otherwise an in-order subsequence walk where each matched query
// character contributes 1 + 0.5*consecutiveRun, plus 2 when it sits at
// the start of the target or right after a space, underscore or
// hyphen. The raw total is normalized by queryLen*3 and damped by
// 1 - 0.2*(targetLen-queryLen)/targetLen to favor tight matches.
type SubsequenceScorer struct{}

// NewSubsequenceScorer creates the reference scorer.
func NewSubsequenceScorer() *SubsequenceScorer {
	return &SubsequenceScorer{}
}

// Name implements Scorer.
func (s *SubsequenceScorer) Name() string { return StrategySubsequence }

// Available implements Scorer. The reference algorithm is pure Go and
// always available.
func (s *SubsequenceScorer) Available() bool { return true }

// Score returns the fuzzy score for a single (query, text) pair along
// with the matched spans. A zero score means no match.
func (s *SubsequenceScorer) Score(query, text string) (float64, []Span) {
	if query == "" || text == "" {
		return 0, nil
	}

	q := strings.ToLower(query)
	tgt := strings.ToLower(text)
	qRunes := []rune(q)
	tRunes := []rune(tgt)

	if q == tgt {
		return 1.0, []Span{{Start: 0, End: len(tRunes) - 1}}
	}
	if strings.HasPrefix(tgt, q) {
		return 0.9, []Span{{Start: 0, End: len(qRunes) - 1}}
	}
	if idx := strings.Index(tgt, q); idx >= 0 {
		start := len([]rune(tgt[:idx]))
		return 0.8, []Span{{Start: start, End: start + len(qRunes) - 1}}
	}

	return s.subsequenceScore(qRunes, tRunes)
}

func (s *SubsequenceScorer) subsequenceScore(query, target []rune) (float64, []Span) {
	total := 0.0
	consecutive := 0
	ti := 0
	var positions []int

	for _, qc := range query {
		found := -1
		for j := ti; j < len(target); j++ {
			if target[j] == qc {
				found = j
				break
			}
		}
		if found == -1 {
			return 0, nil
		}

		if len(positions) > 0 && found == positions[len(positions)-1]+1 {
			consecutive++
		} else {
			consecutive = 0
		}

		total += 1 + 0.5*float64(consecutive)
		if found == 0 || isBoundary(target[found-1]) {
			total += 2
		}

		positions = append(positions, found)
		ti = found + 1
	}

	// queryLen*3 approximates the best attainable raw total.
	score := total / (float64(len(query)) * 3)

	lengthPenalty := 1 - 0.2*float64(len(target)-len(query))/float64(len(target))
	score *= lengthPenalty

	if score <= 0 {
		return 0, nil
	}
	if score > 1 {
		score = 1
	}

	return score, spansFromPositions(positions)
}

// Rank implements Scorer by scoring every text and sorting by score
// descending, ties broken by input order (stable).
func (s *SubsequenceScorer) Rank(query string, texts []string) ([]Result, error) {
	return rankWithScoreFunc(query, texts, s.Score), nil
}

func isBoundary(prev rune) bool {
	return prev == ' ' || prev == '_' || prev == '-'
}

func spansFromPositions(positions []int) []Span {
	if len(positions) == 0 {
		return nil
	}

	spans := []Span{{Start: positions[0], End: positions[0]}}
	for _, p := range positions[1:] {
		last := &spans[len(spans)-1]
		if p == last.End+1 {
			last.End = p
		} else {
			spans = append(spans, Span{Start: p, End: p})
		}
	}
	return spans
}

// rankWithScoreFunc applies a pairwise score function over texts and
// returns matches sorted by score descending, stable on input order.
func rankWithScoreFunc(query string, texts []string, score func(q, t string) (float64, []Span)) []Result {
	var results []Result
	for i, text := range texts {
		sc, spans := score(query, text)
		if sc <= 0 {
			continue
		}
		results = append(results, Result{Index: i, Score: sc, Spans: spans})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}
