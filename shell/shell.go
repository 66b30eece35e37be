package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/cryptic/config"
	"github.com/domino14/cryptic/grammar"
	"github.com/domino14/cryptic/oracle"
	"github.com/domino14/cryptic/solver"
	"github.com/domino14/cryptic/vocab"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("sending quit signal")
)

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

type ShellController struct {
	l   *readline.Instance
	out io.Writer
	ctx context.Context

	config     *config.Config
	execPath   string
	gitVersion string

	vocab  *vocab.Vocabulary
	parser *grammar.Parser
	solver *solver.Solver
	top    int
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController loads the vocabulary and oracle named by cfg and sets up
// the interactive prompt.
func NewShellController(cfg *config.Config, execPath, gitVersion string) (*ShellController, error) {
	sc := &ShellController{
		config:     cfg,
		execPath:   execPath,
		gitVersion: gitVersion,
		ctx:        context.Background(),
		out:        os.Stderr,
	}
	if err := sc.loadSolver(); err != nil {
		return nil, err
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mcryptic>\033[0m ",
		HistoryFile:     "/tmp/cryptic_readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc, nil
}

// loadSolver (re)builds the parser and solver from the current config.
func (sc *ShellController) loadSolver() error {
	v, err := vocab.Load(sc.config)
	if err != nil {
		return fmt.Errorf("loading vocabulary: %w", err)
	}
	o, err := oracle.Load(sc.ctx, sc.config)
	if err != nil {
		return fmt.Errorf("loading oracle: %w", err)
	}
	sc.setSolver(v, o)
	log.Debug().Int("abbreviations", len(v.Abbreviations)).
		Str("oracle", sc.config.GetString(config.ConfigOracleBackend)).Msg("solver-loaded")
	return nil
}

func (sc *ShellController) setSolver(v *vocab.Vocabulary, o oracle.Oracle) {
	sc.vocab = v
	sc.parser = grammar.NewParser(v)
	sc.solver = solver.New(sc.parser, o, v.Abbreviations)
	sc.solver.SetThreads(sc.config.GetInt(config.ConfigThreads))
	sc.solver.SetMinScore(sc.config.GetFloat64(config.ConfigMinScore))
	sc.top = sc.config.GetInt(config.ConfigTop)
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// extractFields splits a command line into the command, its positional
// arguments and its -option value pairs. Quoting follows shell rules.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if len(f) > 1 && strings.HasPrefix(f, "-") && !isNumber(f) {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := f[1:]
			options[key] = append(options[key], fields[i+1])
			i++
			continue
		}
		args = append(args, f)
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		sig <- syscall.SIGINT
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "solve":
		return sc.solve(cmd)
	case "parse":
		return sc.parse(cmd)
	case "batch":
		return sc.batch(cmd)
	case "set":
		return sc.set(cmd)
	case "script":
		return sc.script(cmd)
	case "convert":
		return sc.convert(cmd)
	}
	log.Debug().Msgf("you said: %v", strconv.Quote(line))
	return nil, fmt.Errorf("unknown command %q; try `help`", cmd.cmd)
}

// Execute runs a single command line, as given on the command line.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.standardModeSwitch(line, sig)
	if err != nil {
		if !errors.Is(err, errQuit) {
			sc.showError(err)
		}
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.standardModeSwitch(line, sig)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) Cleanup() {
	if sc.l != nil {
		sc.l.Close()
	}
}
