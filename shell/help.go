package shell

import (
	"embed"
	"errors"
	"strings"
)

//go:embed helptext/*.txt
var helptext embed.FS

func usage(mode string) (string, error) {
	dat, err := helptext.ReadFile("helptext/usage-" + mode + ".txt")
	if err != nil {
		return "", errors.New("error loading helptext: " + err.Error())
	}
	return string(dat), nil
}

func usageTopic(topic string) string {
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		return "There is no help text for the topic " + topic
	}
	return string(dat)
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		text, err := usage("standard")
		if err != nil {
			return nil, err
		}
		return msg(strings.TrimRight(text, "\n")), nil
	}
	return msg(strings.TrimRight(usageTopic(cmd.args[0]), "\n")), nil
}
