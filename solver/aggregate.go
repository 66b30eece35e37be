package solver

import (
	"sort"

	"github.com/samber/lo"
)

// Aggregate ranks the candidates from every parse of a clue. The result is
// sorted by score, highest first, with ties kept in input order. Candidates
// scoring at or below floor are dropped, as is any candidate that is one of
// the clue's own tokens. When several parses propose the same text only the
// best-scoring copy is kept.
func Aggregate(cands []Candidate, tokens []string, floor float64) []Candidate {
	sorted := make([]Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	clueWords := lo.SliceToMap(tokens, func(t string) (string, struct{}) {
		return t, struct{}{}
	})
	seen := make(map[string]struct{}, len(sorted))

	return lo.Filter(sorted, func(c Candidate, _ int) bool {
		if c.Score <= floor {
			return false
		}
		if _, ok := clueWords[c.Text]; ok {
			return false
		}
		if _, ok := seen[c.Text]; ok {
			return false
		}
		seen[c.Text] = struct{}{}
		return true
	})
}
