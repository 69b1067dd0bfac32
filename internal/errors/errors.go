// Package errors defines the error values shared by the rec parser,
// analyzer, and evaluator, and formats them with source context for
// terminal output.
package errors

import (
	"fmt"
	"strings"
)

// Kind is the categorical tag attached to every script error. The string
// values are part of the public contract and are reported verbatim.
type Kind string

const (
	SyntaxError  Kind = "SyntaxError"
	RuntimeError Kind = "RuntimeError"
	NameError    Kind = "NameError"
	TypeError    Kind = "TypeError"
)

// ScriptError is a single error produced while parsing, checking, or
// running a program. Line is the 1-based source line, or 0 when no line
// applies (an unknown entry point). Errors are values: the first one
// produced aborts the operation and travels up the call chain unchanged.
type ScriptError struct {
	Kind    Kind
	Line    int
	Message string
}

// New creates a script error with a formatted detail message.
func New(kind Kind, line int, format string, args ...any) *ScriptError {
	return &ScriptError{
		Kind:    kind,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	if e.Line > 0 {
		fmt.Fprintf(&sb, " at line %d", e.Line)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

// Format formats the error with the offending source line.
// If color is true, ANSI color codes are used for terminal output.
func (e *ScriptError) Format(source string, color bool) string {
	var sb strings.Builder

	if e.Line > 0 {
		fmt.Fprintf(&sb, "%s at line %d\n", e.Kind, e.Line)
	} else {
		fmt.Fprintf(&sb, "%s\n", e.Kind)
	}

	if sourceLine := getSourceLine(source, e.Line); sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(lineNumStr)
		if color {
			sb.WriteString("\033[1;31m") // Red bold
		}
		sb.WriteString(sourceLine)
		if color {
			sb.WriteString("\033[0m") // Reset
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m") // Bold
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m") // Reset
	}

	return sb.String()
}

// getSourceLine extracts a specific line from the source code.
// Lines are 1-indexed.
func getSourceLine(source string, lineNum int) string {
	if source == "" {
		return ""
	}

	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}

	return lines[lineNum-1]
}
