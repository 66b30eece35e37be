package batch

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/cryptic/grammar"
	"github.com/domino14/cryptic/oracle"
	"github.com/domino14/cryptic/solver"
	"github.com/domino14/cryptic/vocab"
)

type sailorOracle struct{}

func (sailorOracle) Score(ctx context.Context, contextPhrase, candidate string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if contextPhrase != "sailor" {
		return 0, nil
	}
	switch candidate {
	case "abot":
		return 1, nil
	case "tabo":
		return 0.5, nil
	}
	return 0, nil
}

func (sailorOracle) Rank(ctx context.Context, contextPhrase string, length int) ([]oracle.WordScore, error) {
	return nil, ctx.Err()
}

const clueFile = `
# anagrams
Sailor jumbled boat (4) | ABOT
Sailor, jumbled boat (4) | tabo
Sailor jumbled boat (4) | xxxx
Quiet (5) | hush
`

func testRunner(t *testing.T, keep int) *Runner {
	v, err := vocab.ParseYAML([]byte("indicators:\n  ANAG_IDT: [jumbled]\n"))
	require.NoError(t, err)
	return NewRunner(solver.New(grammar.NewParser(v), sailorOracle{}, v.Abbreviations), keep)
}

func TestParseLine(t *testing.T) {
	c, err := ParseLine("Ice-cream, for one (3,5) | Ice Cream")
	require.NoError(t, err)
	assert.Equal(t, "Ice-cream, for one", c.Text)
	assert.Equal(t, []string{"icecream", "for", "one"}, c.Tokens)
	assert.Equal(t, []int{3, 5}, c.Lengths)
	assert.Equal(t, "ice cream", c.Solution)

	for _, bad := range []string{
		"no brackets | word",
		"no answer (4)",
		"bad length (x) | word",
		"(4) | word",
		"clue (4) | ",
	} {
		_, err := ParseLine(bad)
		assert.True(t, errors.Is(err, ErrBadLine), bad)
	}
}

func TestReadClues(t *testing.T) {
	clues, err := ReadClues(strings.NewReader(clueFile))
	require.NoError(t, err)
	assert.Len(t, clues, 4)
	assert.Equal(t, "abot", clues[0].Solution)

	_, err = ReadClues(strings.NewReader("fine (4) | word\nbroken\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestSample(t *testing.T) {
	clues, err := ReadClues(strings.NewReader(clueFile))
	require.NoError(t, err)
	assert.Len(t, Sample(clues, 2), 2)
	assert.Equal(t, clues, Sample(clues, 0))
	assert.Equal(t, clues, Sample(clues, 10))
	picked := Sample(clues, 3)
	for _, c := range picked {
		assert.Contains(t, clues, c)
	}
}

func TestRun(t *testing.T) {
	clues, err := ReadClues(strings.NewReader(clueFile))
	require.NoError(t, err)

	var out bytes.Buffer
	rep, err := testRunner(t, 3).Run(context.Background(), clues, &out)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"sailor jumbled boat. Correct solution found: abot",
		"sailor jumbled boat. Correct solution (tabo) got score 0.5.",
		"sailor jumbled boat. Incorrect solution found: abot",
		"quiet. No solution.",
	}, strings.Split(strings.TrimSpace(out.String()), "\n"))

	assert.Equal(t, 4, rep.Total)
	assert.Equal(t, 3, rep.Found)
	assert.Equal(t, 1, rep.Correct)
	assert.Equal(t, 2, rep.WasOption)
	assert.Equal(t, 2, rep.Clues[1].SolutionRank)
	assert.Equal(t, 0, rep.Clues[3].Parses)
	assert.Len(t, rep.Clues[0].Candidates, 2)

	var summary bytes.Buffer
	require.NoError(t, rep.WriteSummary(&summary))
	assert.Contains(t, summary.String(), "Total number of clues: 4\n")
	assert.Contains(t, summary.String(), "Solutions found: 3 (75.0% of clues)\n")
	assert.Contains(t, summary.String(), "Correct solutions found: 1 (25.0% of clues, 33.3% of solutions)\n")
	assert.Contains(t, summary.String(), "one of the options 2 times (50.0% of clues, 66.7% of solutions)\n")
	assert.Contains(t, summary.String(), "Top score distribution:\n")

	var y bytes.Buffer
	require.NoError(t, rep.WriteYAML(&y))
	assert.Contains(t, y.String(), "outcome: correct")
	assert.Contains(t, y.String(), "outcome: no-solution")
	assert.Contains(t, y.String(), "was_option: 2")
}

func TestRunCanceled(t *testing.T) {
	clues, err := ReadClues(strings.NewReader(clueFile))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = testRunner(t, 0).Run(ctx, clues, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmptySummary(t *testing.T) {
	rep := &Report{}
	var out bytes.Buffer
	require.NoError(t, rep.WriteSummary(&out))
	assert.NotContains(t, out.String(), "distribution")
}
