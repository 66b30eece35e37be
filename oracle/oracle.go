// Package oracle estimates how well a candidate answer matches the meaning of
// a phrase. The solver treats an Oracle as a black box; this package also
// provides a thesaurus-backed implementation and a client for a remote one.
package oracle

import (
	"context"
	"sort"
	"strings"
)

const (
	// RankLimit caps the length of a ranked candidate list.
	RankLimit = 1000
	// JoinGlyph joins the words of a multi-word candidate when it is sent
	// to an oracle.
	JoinGlyph = "_"
)

// WordScore is one entry of a ranked list.
type WordScore struct {
	Word  string  `json:"word" yaml:"word"`
	Score float64 `json:"score" yaml:"score"`
}

// Oracle scores candidates against a context phrase. Scores are non-negative
// and larger is better; there is no upper bound. Implementations must be safe
// for concurrent use and deterministic for a fixed corpus.
type Oracle interface {
	// Score rates candidate as a meaning of contextPhrase.
	Score(ctx context.Context, contextPhrase, candidate string) (float64, error)
	// Rank returns up to RankLimit words that best match contextPhrase, best
	// first. A length of 0 means any length; otherwise only words of exactly
	// that many characters (separators included) are returned.
	Rank(ctx context.Context, contextPhrase string, length int) ([]WordScore, error)
}

// NormalizeWord lowercases w and turns join glyphs back into spaces.
func NormalizeWord(w string) string {
	w = strings.ReplaceAll(strings.ToLower(w), JoinGlyph, " ")
	return strings.Join(strings.Fields(w), " ")
}

// JoinWords replaces spaces with the join glyph.
func JoinWords(w string) string {
	return strings.ReplaceAll(w, " ", JoinGlyph)
}

// sortRanked orders by score descending then word ascending, and truncates to
// RankLimit.
func sortRanked(ws []WordScore) []WordScore {
	sort.Slice(ws, func(i, j int) bool {
		if ws[i].Score != ws[j].Score {
			return ws[i].Score > ws[j].Score
		}
		return ws[i].Word < ws[j].Word
	})
	if len(ws) > RankLimit {
		ws = ws[:RankLimit]
	}
	return ws
}
