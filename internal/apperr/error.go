package apperr

import (
	"errors"
	"fmt"
)

// Error is a coded error. Op names the step that failed and Path the file it
// was working on, when there is one.
type Error struct {
	Code Code
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		if msg == "" {
			return e.Err.Error()
		}
		return msg + ": " + e.Err.Error()
	}
	if msg == "" {
		return string(e.Code)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a coded error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches a code and operation to err. It returns nil when err is nil.
func Wrap(code Code, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Op: op, Path: path, Err: err}
}

// CodeOf returns the code of the outermost coded error in err's chain, or
// the empty code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err carries code anywhere in its chain.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Err
	}
	return false
}

// Exit statuses returned by the CLI.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case Is(err, CodeInvalidInput):
		return ExitUsage
	default:
		return ExitFailure
	}
}
