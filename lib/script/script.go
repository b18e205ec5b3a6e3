package script

import (
	"fmt"
	"io"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
)

// NewThread returns a thread whose print statements write to out.
func NewThread(name string, out io.Writer) *starlark.Thread {
	return &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(out, msg)
		},
	}
}

// Exec runs a script with the normtime module predeclared and returns its
// globals. src may be nil, in which case filename is read.
func Exec(filename string, src any, out io.Writer) (starlark.StringDict, error) {
	thread := NewThread("exec "+filename, out)
	globals, err := starlark.ExecFile(thread, filename, src, Predeclared())
	if err != nil {
		log.WithFields(logger.Fields{
			"at":     "script.Exec",
			"file":   filename,
			"reason": err.Error(),
		}).Debug("script failed")
		if evalErr, ok := err.(*starlark.EvalError); ok {
			return nil, oops.Errorf("%s", evalErr.Backtrace())
		}
		return nil, oops.Wrapf(err, "running %s", filename)
	}
	return globals, nil
}

// REPL reads and evaluates expressions from the terminal until EOF.
func REPL() {
	thread := &starlark.Thread{Name: "REPL", Load: repl.MakeLoad()}
	repl.REPL(thread, Predeclared())
}
