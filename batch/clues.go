// Package batch solves a file of clues with known answers and reports how
// well the solver did.
package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"lukechampine.com/frand"

	"github.com/domino14/cryptic/format"
	"github.com/domino14/cryptic/grammar"
)

var ErrBadLine = errors.New("clue lines look like: clue text (5,3) | answer")

// Clue is one line of a clue file.
type Clue struct {
	Text     string
	Tokens   []string
	Lengths  []int
	Solution string
}

// ParseLine reads a line of the form "Sailor jumbled boat (4) | abot".
func ParseLine(line string) (*Clue, error) {
	open := strings.LastIndex(line, "(")
	closing := strings.LastIndex(line, ")")
	bar := strings.LastIndex(line, "|")
	if open < 0 || closing < open || bar < closing {
		return nil, fmt.Errorf("%w: %q", ErrBadLine, line)
	}
	lengths, err := format.ParseLengths(line[open+1 : closing])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrBadLine, line, err)
	}
	text := strings.TrimSpace(line[:open])
	solution := strings.ToLower(strings.TrimSpace(line[bar+1:]))
	if text == "" || solution == "" {
		return nil, fmt.Errorf("%w: %q", ErrBadLine, line)
	}
	return &Clue{
		Text:     text,
		Tokens:   grammar.Tokenize(text),
		Lengths:  lengths,
		Solution: solution,
	}, nil
}

// ReadClues reads one clue per line. Blank lines and lines starting with #
// are skipped.
func ReadClues(r io.Reader) ([]*Clue, error) {
	var clues []*Clue
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		clues = append(clues, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return clues, nil
}

func ReadFile(path string) ([]*Clue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadClues(f)
}

// Sample returns n clues picked at random. The input is not reordered.
func Sample(clues []*Clue, n int) []*Clue {
	if n <= 0 || n >= len(clues) {
		return clues
	}
	shuffled := make([]*Clue, len(clues))
	copy(shuffled, clues)
	frand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
