package grammar

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func isPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// Tokenize lowercases a clue, folds accents, strips punctuation and splits it
// into words. "Sailor's boat, jumbled!" becomes [sailors boat jumbled].
func Tokenize(clue string) []string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(isPunct)),
		runes.Map(unicode.ToLower),
		norm.NFC)
	out, _, err := transform.String(t, clue)
	if err != nil {
		// The chain only drops or maps runes; fall back to a plain lowercase.
		out = strings.ToLower(clue)
	}
	return strings.Fields(out)
}
