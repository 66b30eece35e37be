// Package solver turns the parse trees of a cryptic clue into ranked
// candidate answers. Each parse names one wordplay mechanism; the solver
// generates every string the mechanism allows, keeps those that fit the
// answer's format, and asks an oracle how well each matches the definition.
package solver

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/cryptic/format"
	"github.com/domino14/cryptic/oracle"
	"github.com/domino14/cryptic/tree"
)

const (
	// AnagramMax is the longest fodder that will be anagrammed. The search
	// is factorial in the number of letters.
	AnagramMax = 9
	// DefaultMinScore is the default floor; candidates must score above it.
	DefaultMinScore = 0.0
)

var (
	ErrUnsupportedClueType = errors.New("unsupported clue type")
	ErrMalformedTree       = errors.New("malformed parse tree")
)

// Parser produces every parse of a tokenized clue.
type Parser interface {
	Parse(tokens []string) []*tree.Node
}

// Candidate is a proposed answer and how plausible it is.
type Candidate struct {
	Text  string  `json:"text" yaml:"text"`
	Score float64 `json:"score" yaml:"score"`
}

// Result is the outcome of solving one clue. NumParses is zero when the
// grammar found no reading of the clue at all, which is different from
// finding readings but no plausible answer.
type Result struct {
	Candidates   []Candidate
	NumParses    int
	FailedParses int
}

type Solver struct {
	parser        Parser
	oracle        oracle.Oracle
	abbreviations map[string]string
	minScore      float64
	threads       int
}

// New makes a solver. abbreviations maps a word to the letters it stands
// for in wordplay, e.g. north -> n.
func New(p Parser, o oracle.Oracle, abbreviations map[string]string) *Solver {
	return &Solver{
		parser:        p,
		oracle:        o,
		abbreviations: abbreviations,
		minScore:      DefaultMinScore,
		threads:       max(1, runtime.NumCPU()),
	}
}

func (s *Solver) SetMinScore(f float64) {
	s.minScore = f
}

func (s *Solver) MinScore() float64 {
	return s.minScore
}

func (s *Solver) SetThreads(t int) {
	s.threads = max(1, t)
}

func (s *Solver) Threads() int {
	return s.threads
}

// Solve finds candidate answers for a tokenized clue. f may be nil when the
// shape of the answer is unknown. A parse that cannot be solved (for example
// one that needs an abbreviation nobody knows) is skipped and counted in
// FailedParses; only cancellation of ctx makes Solve fail.
func (s *Solver) Solve(ctx context.Context, tokens []string, f *format.Format) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	roots := s.parser.Parse(tokens)
	res := &Result{NumParses: len(roots)}
	if len(roots) == 0 {
		logger.Debug().Strs("tokens", tokens).Msg("no-parses")
		return res, nil
	}

	memo := oracle.NewMemo(s.oracle)
	sc := &scorer{oracle: memo, threads: s.threads}

	perTree := make([][]Candidate, len(roots))
	failed := make([]bool, len(roots))

	g := errgroup.Group{}
	g.SetLimit(s.threads)
	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			cands, err := s.solveTree(ctx, sc, root, f)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn().Err(err).Int("tree", i).Str("parse", root.String()).Msg("tree-skipped")
				failed[i] = true
				return nil
			}
			perTree[i] = cands
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := lo.Flatten(perTree)
	res.FailedParses = lo.Count(failed, true)
	res.Candidates = Aggregate(all, tokens, s.minScore)

	hits, misses := memo.Stats()
	logger.Debug().Int("parses", res.NumParses).Int("failed", res.FailedParses).
		Int("generated", len(all)).Int("kept", len(res.Candidates)).
		Int("memo-hits", hits).Int("memo-misses", misses).Msg("solved")
	return res, nil
}

// solveTree resolves abbreviations in one parse and hands its clue-type node
// to the matching mechanism.
func (s *Solver) solveTree(ctx context.Context, sc *scorer, root *tree.Node, f *format.Format) ([]Candidate, error) {
	resolved, err := tree.ResolveAbbreviations(root, s.abbreviations)
	if err != nil {
		return nil, err
	}
	n, ct, err := tree.ClueNode(resolved)
	if err != nil {
		return nil, err
	}
	switch ct {
	case tree.DoubleSynonym:
		return solveDoubleSynonym(ctx, sc, n, f)
	case tree.Anagram:
		return solveAnagram(ctx, sc, n, f)
	case tree.Reversal:
		return solveReversal(ctx, sc, n, f)
	case tree.Enclosure, tree.Insertion:
		return solveSplice(ctx, sc, n, f)
	case tree.HiddenWord:
		return solveHidden(ctx, sc, n, f)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedClueType, ct)
}
