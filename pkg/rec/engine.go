// Package rec is the public interface for embedding the rec interpreter.
//
// The one-shot entry point mirrors the language contract directly:
//
//	result, err := rec.Evaluate(source, "fact", 5)
//
// For repeated dispatch against one source text, compile once and call
// many times:
//
//	engine, _ := rec.New()
//	program, err := engine.Compile(source)
//	if err != nil { ... }
//	result, err := program.Call("fact", 5)
//
// All values are int64 with native wraparound; division truncates toward
// zero. Failures are *Error values carrying the originating 1-based source
// line and one of the four kind tags.
package rec

import (
	"github.com/cwbudde/go-rec/internal/ast"
	"github.com/cwbudde/go-rec/internal/interp"
	"github.com/cwbudde/go-rec/internal/parser"
	"github.com/cwbudde/go-rec/internal/semantic"
)

// Engine compiles rec source texts into callable programs.
type Engine struct {
	staticCheck bool
}

// Option configures an Engine.
type Option func(*Engine) error

// WithStaticCheck enables or disables the post-parse call-resolution pass.
// It is enabled by default; disabling it defers call resolution to run
// time, where a bad call surfaces as a NameError or TypeError instead of a
// compile-time SyntaxError.
func WithStaticCheck(enabled bool) Option {
	return func(e *Engine) error {
		e.staticCheck = enabled
		return nil
	}
}

// New creates an engine with the given options.
func New(opts ...Option) (*Engine, error) {
	engine := &Engine{staticCheck: true}
	for _, opt := range opts {
		if err := opt(engine); err != nil {
			return nil, err
		}
	}
	return engine, nil
}

// Compile parses source into a function table and, unless disabled, runs
// the static validation pass. The first parse or validation failure is
// returned as a *Error with kind SyntaxError.
func (e *Engine) Compile(source string) (*Program, error) {
	parsed, perr := parser.New(source).ParseProgram()
	if perr != nil {
		return nil, fromScriptError(perr)
	}

	if e.staticCheck {
		if serr := semantic.NewAnalyzer().Analyze(parsed); serr != nil {
			return nil, fromScriptError(serr)
		}
	}

	return &Program{source: source, tree: parsed, interp: interp.New(parsed)}, nil
}

// Program is a compiled function table ready for dispatch. It is immutable
// and holds no state between calls: every Call owns its environments.
type Program struct {
	source string
	tree   *ast.Program
	interp *interp.Interpreter
}

// Call dispatches the named entry point with the given arguments and
// returns its integer result. An unknown entry is a RuntimeError with line
// 0; an argument-count mismatch is a RuntimeError at the definition line.
func (p *Program) Call(entry string, args ...int64) (int64, error) {
	value, rerr := p.interp.CallFunction(entry, args)
	if rerr != nil {
		return 0, fromScriptError(rerr)
	}
	return value, nil
}

// Source returns the source text the program was compiled from.
func (p *Program) Source() string {
	return p.source
}

// AST returns the parsed function table for tooling. The tree is
// immutable after compilation.
func (p *Program) AST() *ast.Program {
	return p.tree
}

// Evaluate is the one-shot form: parse and validate source, then dispatch
// entry with args. The error, when non-nil, is a *Error.
func Evaluate(source, entry string, args ...int64) (int64, error) {
	engine, err := New()
	if err != nil {
		return 0, err
	}

	program, err := engine.Compile(source)
	if err != nil {
		return 0, err
	}

	return program.Call(entry, args...)
}
