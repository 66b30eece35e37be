// Package format describes the known shape of a clue's answer: how many
// words it has, how long each word is, and any letters already filled in
// from crossing answers.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	// WordSeparator separates words in a pattern and in multi-word answers.
	WordSeparator = " "
	// Unknown marks a letter that is not known yet.
	Unknown = '_'
	// AltUnknown is accepted in patterns as a synonym for Unknown.
	AltUnknown = '?'
)

// FormatError is returned when a pattern does not agree with the word lengths
// it was given.
type FormatError struct {
	Pattern string
	Reason  string
}

func (e *FormatError) Error() string {
	if e.Pattern == "" {
		return "bad solution format: " + e.Reason
	}
	return fmt.Sprintf("bad solution format %q: %s", e.Pattern, e.Reason)
}

type position struct {
	word   int
	letter int
}

// Format is immutable once built. A nil *Format means the shape of the answer
// is unknown.
type Format struct {
	lengths []int
	total   int
	letters map[position]rune
}

// New builds a Format for an answer of len(lengths) words. pattern is either
// empty (no letters known) or the full answer with '_' for each unknown letter
// and a single space between words, e.g. "c_t ___".
func New(lengths []int, pattern string) (*Format, error) {
	if len(lengths) == 0 {
		return nil, &FormatError{Pattern: pattern, Reason: "no word lengths"}
	}
	f := &Format{
		lengths: make([]int, len(lengths)),
		letters: make(map[position]rune),
	}
	for i, l := range lengths {
		if l <= 0 {
			return nil, &FormatError{Pattern: pattern,
				Reason: "word length must be positive, got " + strconv.Itoa(l)}
		}
		f.lengths[i] = l
		f.total += l
	}
	if err := f.parsePattern(pattern); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Format) parsePattern(pattern string) error {
	if pattern == "" {
		return nil
	}
	groups := strings.Split(pattern, WordSeparator)
	if len(groups) != len(f.lengths) {
		return &FormatError{Pattern: pattern, Reason: fmt.Sprintf(
			"expected %d words, got %d", len(f.lengths), len(groups))}
	}
	for i, g := range groups {
		runes := []rune(g)
		if len(runes) != f.lengths[i] {
			return &FormatError{Pattern: pattern, Reason: fmt.Sprintf(
				"word %d should have %d letters, got %d", i+1, f.lengths[i], len(runes))}
		}
		for j, r := range runes {
			switch {
			case unicode.IsLetter(r):
				f.letters[position{i, j}] = unicode.ToLower(r)
			case r == Unknown || r == AltUnknown:
			default:
				return &FormatError{Pattern: pattern,
					Reason: fmt.Sprintf("illegal character %q", r)}
			}
		}
	}
	return nil
}

// ParseLengths reads a comma-separated list of word lengths such as "5,3".
func ParseLengths(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	lengths := make([]int, 0, len(fields))
	for _, fl := range fields {
		l, err := strconv.Atoi(strings.TrimSpace(fl))
		if err != nil {
			return nil, &FormatError{Pattern: s, Reason: "bad word length " + strconv.Quote(fl)}
		}
		lengths = append(lengths, l)
	}
	return lengths, nil
}

func (f *Format) NumWords() int {
	return len(f.lengths)
}

// Lengths returns a copy of the per-word lengths.
func (f *Format) Lengths() []int {
	return append([]int(nil), f.lengths...)
}

// TotalLength is the number of letters in the answer, plus the separators
// between words when withSpaces is set.
func (f *Format) TotalLength(withSpaces bool) int {
	if withSpaces {
		return f.total + len(f.lengths) - 1
	}
	return f.total
}

// AddSpaces splits a run of exactly TotalLength(false) letters into the
// answer's words. Anything else is returned as is.
func (f *Format) AddSpaces(word string) string {
	if len(f.lengths) == 1 {
		return word
	}
	runes := []rune(word)
	if len(runes) != f.total {
		return word
	}
	var sb strings.Builder
	start := 0
	for i, l := range f.lengths {
		if i > 0 {
			sb.WriteString(WordSeparator)
		}
		sb.WriteString(string(runes[start : start+l]))
		start += l
	}
	return sb.String()
}

// Check reports whether word fits the format. word may be given with or
// without separators.
func (f *Format) Check(word string) bool {
	words := strings.Split(f.AddSpaces(word), WordSeparator)
	if len(words) != len(f.lengths) {
		return false
	}
	for i, w := range words {
		runes := []rune(w)
		if len(runes) != f.lengths[i] {
			return false
		}
		for j, r := range runes {
			known, ok := f.letters[position{i, j}]
			if ok && unicode.ToLower(r) != known {
				return false
			}
		}
	}
	return true
}

// String renders the format as a pattern, e.g. "c__ ___".
func (f *Format) String() string {
	var sb strings.Builder
	for i, l := range f.lengths {
		if i > 0 {
			sb.WriteString(WordSeparator)
		}
		for j := 0; j < l; j++ {
			if r, ok := f.letters[position{i, j}]; ok {
				sb.WriteRune(r)
			} else {
				sb.WriteRune(Unknown)
			}
		}
	}
	return sb.String()
}
