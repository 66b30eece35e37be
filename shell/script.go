package shell

import (
	"errors"
	"net/http"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("cryptic_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// Solve is cryptic_solve(clue [, lengths [, letters]]). It returns a list
// of {text, score} tables, or nil and an error message.
func Solve(L *lua.LState) int {
	sc := getShell(L)
	clue := L.CheckString(1)
	opts := CmdOptions{}
	if lengths := L.OptString(2, ""); lengths != "" {
		opts["len"] = []string{lengths}
	}
	if letters := L.OptString(3, ""); letters != "" {
		opts["letters"] = []string{letters}
	}
	res, err := sc.solveClue(clue, opts)
	if err != nil {
		log.Err(err).Msg("error-executing-solve")
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	tbl := L.NewTable()
	for _, c := range res.Candidates {
		ct := L.NewTable()
		L.SetField(ct, "text", lua.LString(c.Text))
		L.SetField(ct, "score", lua.LNumber(c.Score))
		tbl.Append(ct)
	}
	L.Push(tbl)
	return 1
}

func Parse(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.parse(&shellcmd{
		cmd:  "parse",
		args: []string{L.CheckString(1)},
	})
	if err != nil {
		log.Err(err).Msg("error-executing-parse")
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	L.Push(lua.LString(r.message))
	return 1
}

func Set(L *lua.LState) int {
	sc := getShell(L)
	key := L.CheckString(1)
	r, err := sc.set(&shellcmd{
		cmd:  "set",
		args: []string{key, L.CheckString(2)},
	})
	if err != nil {
		log.Err(err).Msg("error-executing-set")
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	L.Push(lua.LString(r.message))
	// return number of results pushed to stack.
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{}).Loader)
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("cryptic_shell", lsc)
	L.SetGlobal("cryptic_solve", L.NewFunction(Solve))
	L.SetGlobal("cryptic_parse", L.NewFunction(Parse))
	L.SetGlobal("cryptic_set", L.NewFunction(Set))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
