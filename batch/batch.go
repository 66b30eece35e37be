package batch

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/domino14/cryptic/format"
	"github.com/domino14/cryptic/solver"
	"github.com/domino14/cryptic/stats"
)

const (
	histogramBins  = 10
	histogramWidth = 40
	confidence     = 95
)

type Outcome string

const (
	NoSolution Outcome = "no-solution"
	Correct    Outcome = "correct"
	WasOption  Outcome = "was-option"
	Incorrect  Outcome = "incorrect"
)

// ClueReport is what happened to one clue.
type ClueReport struct {
	Clue          string             `yaml:"clue"`
	Solution      string             `yaml:"solution"`
	Outcome       Outcome            `yaml:"outcome"`
	Best          string             `yaml:"best,omitempty"`
	BestScore     float64            `yaml:"best_score,omitempty"`
	SolutionScore float64            `yaml:"solution_score,omitempty"`
	SolutionRank  int                `yaml:"solution_rank,omitempty"`
	Parses        int                `yaml:"parses"`
	FailedParses  int                `yaml:"failed_parses,omitempty"`
	Candidates    []solver.Candidate `yaml:"candidates,omitempty"`
}

// Line renders the report in the one-line form written while solving.
func (c *ClueReport) Line() string {
	switch c.Outcome {
	case Correct:
		return fmt.Sprintf("%s. Correct solution found: %s", c.Clue, c.Best)
	case WasOption:
		return fmt.Sprintf("%s. Correct solution (%s) got score %g.", c.Clue, c.Solution, c.SolutionScore)
	case Incorrect:
		return fmt.Sprintf("%s. Incorrect solution found: %s", c.Clue, c.Best)
	}
	return fmt.Sprintf("%s. No solution.", c.Clue)
}

type Report struct {
	Clues     []*ClueReport `yaml:"clues"`
	Total     int           `yaml:"total"`
	Found     int           `yaml:"found"`
	Correct   int           `yaml:"correct"`
	WasOption int           `yaml:"was_option"`
	Elapsed   time.Duration `yaml:"elapsed"`

	topScores []float64
	top       stats.Running
}

type Runner struct {
	solver *solver.Solver
	keep   int
}

// NewRunner makes a runner. keep is how many candidates per clue are kept
// in the report.
func NewRunner(s *solver.Solver, keep int) *Runner {
	return &Runner{solver: s, keep: keep}
}

// Run solves every clue in order, writing a line per clue to w as it goes.
func (r *Runner) Run(ctx context.Context, clues []*Clue, w io.Writer) (*Report, error) {
	logger := zerolog.Ctx(ctx)
	rep := &Report{Total: len(clues)}
	start := time.Now()

	for i, c := range clues {
		f, err := format.New(c.Lengths, "")
		if err != nil {
			logger.Warn().Err(err).Str("clue", c.Text).Msg("ignoring-format")
			f = nil
		}
		res, err := r.solver.Solve(ctx, c.Tokens, f)
		if err != nil {
			return nil, err
		}
		cr := r.evaluate(c, res)
		rep.add(cr)
		if _, err := fmt.Fprintln(w, cr.Line()); err != nil {
			return nil, err
		}
		logger.Debug().Int("clue", i+1).Int("of", len(clues)).Str("outcome", string(cr.Outcome)).
			Msg("batch-clue-solved")
	}
	rep.Elapsed = time.Since(start)
	return rep, nil
}

func (r *Runner) evaluate(c *Clue, res *solver.Result) *ClueReport {
	cr := &ClueReport{
		Clue:         strings.Join(c.Tokens, " "),
		Solution:     c.Solution,
		Outcome:      NoSolution,
		Parses:       res.NumParses,
		FailedParses: res.FailedParses,
	}
	if len(res.Candidates) == 0 {
		return cr
	}
	best := res.Candidates[0]
	cr.Best, cr.BestScore = best.Text, best.Score
	cr.Outcome = Incorrect
	for i, cand := range res.Candidates {
		if cand.Text == c.Solution {
			cr.SolutionScore, cr.SolutionRank = cand.Score, i+1
			cr.Outcome = WasOption
			break
		}
	}
	if best.Text == c.Solution {
		cr.Outcome = Correct
	}
	if r.keep > 0 {
		cr.Candidates = res.Candidates[:min(r.keep, len(res.Candidates))]
	}
	return cr
}

func (rep *Report) add(cr *ClueReport) {
	rep.Clues = append(rep.Clues, cr)
	if cr.Outcome == NoSolution {
		return
	}
	rep.Found++
	rep.topScores = append(rep.topScores, cr.BestScore)
	rep.top.Add(cr.BestScore)
	switch cr.Outcome {
	case Correct:
		rep.Correct++
		rep.WasOption++
	case WasOption:
		rep.WasOption++
	}
}

// WriteSummary prints the totals and a histogram of the best score found
// for each clue.
func (rep *Report) WriteSummary(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"Total number of clues: %d\n"+
			"Solutions found: %d (%.1f%% of clues)\n"+
			"Correct solutions found: %d (%.1f%% of clues, %.1f%% of solutions)\n"+
			"The correct solution was one of the options %d times (%.1f%% of clues, %.1f%% of solutions)\n"+
			"Mean top score: %.4f ± %.4f (%d%% confidence)\n"+
			"Calculation lasted %.2f seconds.\n",
		rep.Total,
		rep.Found, stats.Percent(rep.Found, rep.Total),
		rep.Correct, stats.Percent(rep.Correct, rep.Total), stats.Percent(rep.Correct, rep.Found),
		rep.WasOption, stats.Percent(rep.WasOption, rep.Total), stats.Percent(rep.WasOption, rep.Found),
		rep.top.Mean(), rep.top.Interval(confidence), confidence,
		rep.Elapsed.Seconds())
	if err != nil {
		return err
	}
	if len(rep.topScores) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "Top score distribution:\n"); err != nil {
		return err
	}
	return histogram.Fprint(w, histogram.Hist(histogramBins, rep.topScores), histogram.Linear(histogramWidth))
}

func (rep *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}
	return enc.Close()
}
