package solver

import (
	"context"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/domino14/cryptic/anagrammer"
	"github.com/domino14/cryptic/format"
	"github.com/domino14/cryptic/oracle"
	"github.com/domino14/cryptic/tree"
)

// mechanism returns the wordplay and definition parts of a clue-type node,
// and the node under the wordplay part labeled want.
func mechanism(n *tree.Node, want tree.Label) (*tree.Node, *tree.Node, error) {
	mech, syn := n.Parts()
	if mech == nil || syn == nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedTree, n)
	}
	operand := mech.Child(want)
	if operand == nil {
		return nil, nil, fmt.Errorf("%w: no %v under %v", ErrMalformedTree, want, mech.Label)
	}
	return operand, syn, nil
}

// fit keeps the words that match f, split into the answer's words. A nil f
// keeps everything.
func fit(words []string, f *format.Format) []string {
	if f == nil {
		return words
	}
	return lo.FilterMap(words, func(w string, _ int) (string, bool) {
		if !f.Check(w) {
			return "", false
		}
		return f.AddSpaces(w), true
	})
}

func solveAnagram(ctx context.Context, sc *scorer, n *tree.Node, f *format.Format) ([]Candidate, error) {
	fodder, syn, err := mechanism(n, tree.AnagWord)
	if err != nil {
		return nil, err
	}
	letters := fodder.Letters()
	if utf8.RuneCountInString(letters) > AnagramMax {
		zerolog.Ctx(ctx).Debug().Str("fodder", letters).Msg("anagram-too-long")
		return nil, nil
	}
	zerolog.Ctx(ctx).Debug().Str("fodder", letters).Int("permutations", anagrammer.Count(letters)).
		Msg("anagramming")
	words := fit(anagrammer.Permutations(letters), f)
	return sc.scoreAll(ctx, syn.Sentence(), words)
}

// Reverse reverses s rune by rune.
func Reverse(s string) string {
	r := []rune(s)
	slices.Reverse(r)
	return string(r)
}

func solveReversal(ctx context.Context, sc *scorer, n *tree.Node, f *format.Format) ([]Candidate, error) {
	word, syn, err := mechanism(n, tree.RevWord)
	if err != nil {
		return nil, err
	}
	words := fit([]string{Reverse(word.Letters())}, f)
	return sc.scoreAll(ctx, syn.Sentence(), words)
}

// Insertions places ins inside enc at every internal split point. The ends
// of enc are never used: "cat" and "x" give "cxat" and "caxt" only.
func Insertions(enc, ins string) []string {
	outer := []rune(enc)
	if len(outer) < 2 {
		return nil
	}
	out := make([]string, 0, len(outer)-1)
	for i := 1; i < len(outer); i++ {
		out = append(out, string(outer[:i])+ins+string(outer[i:]))
	}
	return out
}

// solveSplice handles both enclosures and insertions. The two only differ
// in the order their operands appear in the clue, and the operands are found
// by label.
func solveSplice(ctx context.Context, sc *scorer, n *tree.Node, f *format.Format) ([]Candidate, error) {
	mech, syn := n.Parts()
	if mech == nil || syn == nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTree, n)
	}
	enc, ins := mech.Child(tree.EncWord), mech.Child(tree.InsWord)
	if enc == nil || ins == nil {
		return nil, fmt.Errorf("%w: %v needs %v and %v", ErrMalformedTree, mech.Label, tree.EncWord, tree.InsWord)
	}
	words := fit(Insertions(enc.Letters(), ins.Letters()), f)
	return sc.scoreAll(ctx, syn.Sentence(), words)
}

// HiddenWords lists the runs of letters hidden in phrase. With a format only
// runs of the answer's length that fit it are returned, split into words.
// Without one every run shorter than the phrase is returned.
func HiddenWords(phrase string, f *format.Format) []string {
	letters := []rune(phrase)
	var out []string
	if f != nil {
		l := f.TotalLength(false)
		for i := 0; i+l <= len(letters); i++ {
			out = append(out, string(letters[i:i+l]))
		}
		return fit(out, f)
	}
	for l := 1; l < len(letters); l++ {
		for i := 0; i+l <= len(letters); i++ {
			out = append(out, string(letters[i:i+l]))
		}
	}
	return out
}

func solveHidden(ctx context.Context, sc *scorer, n *tree.Node, f *format.Format) ([]Candidate, error) {
	phrase, syn, err := mechanism(n, tree.HidWord)
	if err != nil {
		return nil, err
	}
	return sc.scoreAll(ctx, syn.Sentence(), HiddenWords(phrase.Letters(), f))
}

// solveDoubleSynonym looks for words that both halves of the clue define.
// The score is the product of the two halves' scores.
func solveDoubleSynonym(ctx context.Context, sc *scorer, n *tree.Node, f *format.Format) ([]Candidate, error) {
	first, second := n.Parts()
	if first == nil || second == nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTree, n)
	}
	length := 0
	if f != nil {
		length = f.TotalLength(true)
	}
	firstRanked, err := sc.oracle.Rank(ctx, first.Sentence(), length)
	if err != nil {
		return nil, fmt.Errorf("ranking %q: %w", first.Sentence(), err)
	}
	secondRanked, err := sc.oracle.Rank(ctx, second.Sentence(), length)
	if err != nil {
		return nil, fmt.Errorf("ranking %q: %w", second.Sentence(), err)
	}

	secondScores := make(map[string]float64, len(secondRanked))
	for _, ws := range secondRanked {
		w := oracle.NormalizeWord(ws.Word)
		if f != nil && !f.Check(w) {
			continue
		}
		if _, ok := secondScores[w]; !ok {
			secondScores[w] = ws.Score
		}
	}

	var out []Candidate
	seen := make(map[string]bool)
	for _, ws := range firstRanked {
		w := oracle.NormalizeWord(ws.Word)
		s2, ok := secondScores[w]
		if !ok || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, Candidate{Text: w, Score: ws.Score * s2})
	}
	return out, nil
}
