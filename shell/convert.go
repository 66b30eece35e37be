package shell

import (
	"errors"
	"fmt"

	"github.com/domino14/cryptic/oracle"
)

// convert copies a text thesaurus into a SQLite database usable with the
// sqlite oracle backend.
func (sc *ShellController) convert(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: convert <thesaurus.txt> <thesaurus.db>")
	}
	th, err := oracle.LoadThesaurusFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := oracle.SaveThesaurusDB(sc.ctx, cmd.args[1], th); err != nil {
		return nil, fmt.Errorf("writing %s: %w", cmd.args[1], err)
	}
	return msg(fmt.Sprintf("Wrote %d headwords to %s", th.Len(), cmd.args[1])), nil
}
