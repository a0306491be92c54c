package validator

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Exit statuses returned by Run and Probe.
const (
	ExitOK       = 0
	ExitNull     = 1
	ExitUsage    = 2
	ExitInternal = 3
)

// Procedure is a validation run. args excludes the program name.
type Procedure interface {
	Run(args []string, stdout, stderr io.Writer) int
}

// ProcedureFunc adapts a function to Procedure.
type ProcedureFunc func(args []string, stdout, stderr io.Writer) int

// Run implements Procedure.
func (f ProcedureFunc) Run(args []string, stdout, stderr io.Writer) int {
	return f(args, stdout, stderr)
}

// Run redirects both output streams to their callbacks and runs proc with
// process-style args (args[0] is the program name). A nil proc selects Probe.
// A panic inside proc is reported on the error stream as ExitInternal.
func Run(args []string, out, errOut Output, proc Procedure) (code int) {
	stdout := NewRedirect(out)
	stderr := NewRedirect(errOut)
	if proc == nil {
		proc = &Probe{}
	}
	if len(args) > 0 {
		args = args[1:]
	}

	defer func() {
		if r := recover(); r != nil {
			Logger().Error("validation procedure panicked", zap.Any("panic", r))
			fmt.Fprintf(stderr, "internal error: %v\n", r)
			code = ExitInternal
		}
	}()

	code = proc.Run(args, stdout, stderr)
	Logger().Debug("validation finished", zap.Strings("args", args), zap.Int("code", code))
	return code
}
