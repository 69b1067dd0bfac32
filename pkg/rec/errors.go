package rec

import screrr "github.com/cwbudde/go-rec/internal/errors"

// ErrorKind is the categorical tag of a script error. The values are the
// literal strings of the language contract.
type ErrorKind string

const (
	SyntaxError  ErrorKind = "SyntaxError"
	RuntimeError ErrorKind = "RuntimeError"
	NameError    ErrorKind = "NameError"
	TypeError    ErrorKind = "TypeError"
)

// Error is the public form of a script error: the 1-based source line (0
// when no line applies, e.g. an unknown entry point), the kind tag, and an
// optional detail message. Every error returned by Evaluate, Compile, and
// Program.Call is of this type.
type Error struct {
	Kind    ErrorKind
	Line    int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.internal().Error()
}

// Format formats the error together with the offending source line.
// If color is true, ANSI color codes are used for terminal output.
func (e *Error) Format(source string, color bool) string {
	return e.internal().Format(source, color)
}

func (e *Error) internal() *screrr.ScriptError {
	return &screrr.ScriptError{Kind: screrr.Kind(e.Kind), Line: e.Line, Message: e.Message}
}

// fromScriptError converts an internal error to the public type. It
// preserves line and kind verbatim.
func fromScriptError(err *screrr.ScriptError) *Error {
	return &Error{Kind: ErrorKind(err.Kind), Line: err.Line, Message: err.Message}
}
