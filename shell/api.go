package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/cryptic/batch"
	"github.com/domino14/cryptic/config"
	"github.com/domino14/cryptic/format"
	"github.com/domino14/cryptic/grammar"
	"github.com/domino14/cryptic/oracle"
	"github.com/domino14/cryptic/solver"
	"github.com/domino14/cryptic/tree"
	"github.com/domino14/cryptic/vocab"
)

const illegalFormat = "Illegal input. Format will be ignored when trying to solve the clue."

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func (c CmdOptions) StringArray(key string) []string {
	return c[key]
}

func msg(message string) *Response {
	return &Response{message: message}
}

// solutionFormat builds the answer format from -len and -letters. A bad
// format is reported and ignored; the clue is still solved.
func (sc *ShellController) solutionFormat(opts CmdOptions) *format.Format {
	lenStr := opts.String("len")
	if lenStr == "" {
		if opts.String("letters") != "" {
			sc.showMessage("-letters needs -len. " + illegalFormat)
		}
		return nil
	}
	lengths, err := format.ParseLengths(lenStr)
	if err == nil {
		var f *format.Format
		f, err = format.New(lengths, opts.String("letters"))
		if err == nil {
			return f
		}
	}
	log.Warn().Err(err).Msg("ignoring-format")
	sc.showMessage(illegalFormat)
	return nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: solve <clue> [-len 5,3] [-letters \"c__ ___\"] [-top n]")
	}
	top, err := cmd.options.IntDefault("top", sc.top)
	if err != nil {
		return nil, err
	}
	res, err := sc.solveClue(strings.Join(cmd.args, " "), cmd.options)
	if err != nil {
		return nil, err
	}
	return msg(resultText(res, top)), nil
}

func (sc *ShellController) solveClue(clue string, opts CmdOptions) (*solver.Result, error) {
	tokens := grammar.Tokenize(clue)
	if len(tokens) == 0 {
		return nil, errors.New("the clue has no words")
	}
	return sc.solver.Solve(sc.ctx, tokens, sc.solutionFormat(opts))
}

func resultText(res *solver.Result, top int) string {
	var sb strings.Builder
	if len(res.Candidates) == 0 {
		if res.NumParses == 0 {
			sb.WriteString("The clue could not be parsed; check its indicator words.\n")
		}
		sb.WriteString("No plausible solutions found.")
		return sb.String()
	}
	best := res.Candidates[0]
	fmt.Fprintf(&sb, "The best possible solution we found was '%s'\n", best.Text)
	fmt.Fprintf(&sb, "Match score: %g", best.Score)
	others := res.Candidates[1:min(max(top, 1), len(res.Candidates))]
	if len(others) > 0 {
		sb.WriteString("\nOther possible solutions include:")
		for _, c := range others {
			fmt.Fprintf(&sb, "\n%s score: %g", c.Text, c.Score)
		}
	}
	return sb.String()
}

func (sc *ShellController) parse(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: parse <clue>")
	}
	roots := sc.parser.Parse(grammar.Tokenize(strings.Join(cmd.args, " ")))
	if len(roots) == 0 {
		return msg("No parses."), nil
	}
	var sb strings.Builder
	for i, r := range roots {
		_, ct, err := tree.ClueNode(r)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%3d: %-14s %s", i+1, ct, r)
	}
	return msg(sb.String()), nil
}

func createFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Msg("created-file")
	return f, nil
}

func (sc *ShellController) batch(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: batch <file> [-out results.txt] [-report report.yaml] [-sample n] [-keep n]")
	}
	clues, err := batch.ReadFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	sample, err := cmd.options.IntDefault("sample", 0)
	if err != nil {
		return nil, err
	}
	keep, err := cmd.options.IntDefault("keep", sc.top)
	if err != nil {
		return nil, err
	}
	clues = batch.Sample(clues, sample)
	sc.showMessage(fmt.Sprintf("Solving %d clues in file %s", len(clues), cmd.args[0]))

	var w io.Writer = sc.out
	if out := cmd.options.String("out"); out != "" {
		f, err := createFile(out)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		w = f
	}
	rep, err := batch.NewRunner(sc.solver, keep).Run(sc.ctx, clues, w)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	if err := rep.WriteSummary(&sb); err != nil {
		return nil, err
	}
	if report := cmd.options.String("report"); report != "" {
		f, err := createFile(report)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := rep.WriteYAML(f); err != nil {
			return nil, err
		}
		sb.WriteString("Wrote report to " + report + "\n")
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

// settable are the settings that can be changed from the shell.
var settable = []string{
	config.ConfigMinScore, config.ConfigThreads, config.ConfigTop,
	config.ConfigOracleBackend, config.ConfigOracleURL,
	config.ConfigThesaurusPath, config.ConfigVocabPath,
}

func (sc *ShellController) settingsText() string {
	lines := lo.Map(settable, func(k string, _ int) string {
		return fmt.Sprintf("%-16s %v", k, sc.config.Get(k))
	})
	return strings.Join(lines, "\n")
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.settingsText()), nil
	}
	opt := cmd.args[0]
	if !lo.Contains(settable, opt) {
		return nil, fmt.Errorf("%q is not a setting; choose from %s", opt, strings.Join(settable, ", "))
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s: %v", opt, sc.config.Get(opt))), nil
	}
	ret, err := sc.Set(opt, cmd.args[1])
	if err != nil {
		return nil, err
	}
	return msg("set " + opt + " to " + ret), nil
}

// Set changes a setting. Settings that name a vocabulary or oracle reload
// the solver; if that fails the old value is restored.
func (sc *ShellController) Set(key, value string) (string, error) {
	switch key {
	case config.ConfigMinScore:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", err
		}
		sc.config.Set(key, f)
		sc.solver.SetMinScore(f)
	case config.ConfigThreads, config.ConfigTop:
		n, err := strconv.Atoi(value)
		if err != nil {
			return "", err
		}
		if n < 1 {
			return "", fmt.Errorf("%s must be at least 1", key)
		}
		sc.config.Set(key, n)
		if key == config.ConfigThreads {
			sc.solver.SetThreads(n)
		} else {
			sc.top = n
		}
	case config.ConfigOracleBackend, config.ConfigOracleURL,
		config.ConfigThesaurusPath, config.ConfigVocabPath:
		old := sc.config.Get(key)
		sc.config.Set(key, value)
		// Setting a path again rereads the file.
		switch key {
		case config.ConfigThesaurusPath:
			oracle.Evict(sc.config)
		case config.ConfigVocabPath:
			vocab.Evict(sc.config)
		}
		if err := sc.loadSolver(); err != nil {
			sc.config.Set(key, old)
			return "", err
		}
	default:
		return "", fmt.Errorf("%q cannot be set", key)
	}
	return value, nil
}
