package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/cryptic/config"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-len", "-top")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"solve": {
		Options: []string{"-len", "-letters", "-top"},
	},
	"batch": {
		Options: []string{"-out", "-report", "-sample", "-keep"},
	},
	"set": {
		Args: settable,
	},
	"help": {
		Args: []string{"solve", "parse", "batch", "set", "script", "convert"},
	},
}

var commandNames = []string{
	"help", "solve", "parse", "batch", "set", "script", "convert", "exit",
}

var backendValues = []string{config.BackendThesaurus, config.BackendSQLite, config.BackendRemote}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// An unterminated quote is normal while typing a clue.
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if cmdName == "set" && lastCompleteField == config.ConfigOracleBackend {
			completions = backendValues
		} else if metadata, exists := commandMetadata[cmdName]; exists {
			if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
				completions = metadata.Options
			} else if len(fields) == 1 || (len(fields) == 2 && !endsWithSpace) {
				completions = metadata.Args
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
