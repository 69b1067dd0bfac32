// Package semantic implements the static validation pass that runs after
// parsing. It resolves every call expression against the function table;
// unresolved or arity-mismatched calls are compile-time syntax errors at
// the call's line, pre-empting the runtime NameError/TypeError paths.
package semantic

import (
	"github.com/cwbudde/go-rec/internal/ast"
	"github.com/cwbudde/go-rec/internal/errors"
)

// Analyzer performs the static call-resolution pass over a parsed program.
type Analyzer struct{}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze walks every function body and checks each call. It returns the
// first failure, reported as a SyntaxError at the call's line.
func (a *Analyzer) Analyze(program *ast.Program) *errors.ScriptError {
	for _, fn := range program.Functions {
		if err := a.checkScope(program, fn.Body); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) checkScope(program *ast.Program, scope *ast.Scope) *errors.ScriptError {
	for _, stmt := range scope.Statements {
		switch s := stmt.(type) {
		case *ast.AssignStatement:
			call, ok := s.Value.(*ast.CallExpression)
			if !ok {
				continue
			}
			if !resolves(program, call) {
				return errors.New(errors.SyntaxError, call.Line,
					"call to %q does not match any function with %d parameter(s)", call.Callee, len(call.Args))
			}
		case *ast.PredicateBlock:
			if err := a.checkScope(program, s.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolves reports whether exactly one defined function matches the
// call's name and arity.
func resolves(program *ast.Program, call *ast.CallExpression) bool {
	matches := 0
	for _, fn := range program.Functions {
		if fn.Name == call.Callee && len(fn.Params) == len(call.Args) {
			matches++
		}
	}
	return matches == 1
}
