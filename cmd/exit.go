package cmd

import (
	"fmt"
	"os"
	"strings"
)

const (
	CodeFailed         = 1
	CodeForInvalidArgs = iota + 1
	CodeForIncompatibleArgs
)

type ErrorFail struct {
	Err    error
	Code   int
	Action []string
}

func (e *ErrorFail) Error() string {
	message := "failed to " + strings.Join(e.Action, " ")
	if e.Err == nil {
		return message
	}
	return fmt.Sprintf("%s: %s", message, e.Err)
}

func FailCode(code int, action ...string) *ErrorFail {
	return FailErrCode(nil, code, action...)
}

func FailErr(err error, action ...string) *ErrorFail {
	code := CodeFailed
	if err, ok := err.(*ErrorFail); ok {
		code = err.Code
	}
	return FailErrCode(err, code, action...)
}

func FailErrCode(err error, code int, action ...string) *ErrorFail {
	return &ErrorFail{Err: err, Code: code, Action: action}
}

// FailStatus reports a command that already printed its own diagnostics and
// only needs a nonzero exit status.
func FailStatus(code int) *ErrorFail {
	return &ErrorFail{Code: code}
}

func Exit(err error) {
	if err == nil {
		os.Exit(0)
	}
	if fail, ok := err.(*ErrorFail); ok {
		if fail.Err == nil && len(fail.Action) == 0 {
			os.Exit(fail.Code)
		}
		DefaultLogger.Errorf("%s\n", err)
		os.Exit(fail.Code)
	}
	DefaultLogger.Errorf("%s\n", err)
	os.Exit(CodeFailed)
}

func ExitWithVersion() {
	DefaultLogger.Infof(buildVersion())
	os.Exit(0)
}
