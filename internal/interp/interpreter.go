// Package interp implements the tree-walking evaluator for parsed rec
// programs.
//
// Evaluation is single-threaded, synchronous, and pure CPU over in-memory
// structures. Each invocation owns a fresh flat environment; the function
// table is shared read-only. Errors are values carrying the originating
// source line and a categorical tag, propagated up the call chain without
// recovery.
package interp

import (
	"fmt"

	"github.com/cwbudde/go-rec/internal/ast"
	"github.com/cwbudde/go-rec/internal/errors"
)

// Interpreter executes functions of one parsed program.
type Interpreter struct {
	program *ast.Program
}

// New creates an interpreter over a parsed function table.
func New(program *ast.Program) *Interpreter {
	return &Interpreter{program: program}
}

// CallFunction dispatches the named entry point with the given arguments.
// An unknown name reports a RuntimeError with line 0; an argument count
// that does not match the function's parameters reports a RuntimeError at
// the definition line.
func (i *Interpreter) CallFunction(name string, args []int64) (int64, *errors.ScriptError) {
	fn := i.program.Lookup(name)
	if fn == nil {
		return 0, errors.New(errors.RuntimeError, 0, "unknown function %q", name)
	}
	return i.invoke(fn, args)
}

// invoke runs one function in a fresh environment. The return slot, named
// after the function, is seeded with 0 before the parameters are bound, so
// a body that never assigns it returns 0 and a parameter sharing the
// function's name overwrites the seed.
func (i *Interpreter) invoke(fn *ast.FunctionDecl, args []int64) (int64, *errors.ScriptError) {
	if len(args) != len(fn.Params) {
		return 0, errors.New(errors.RuntimeError, fn.Line,
			"%s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}

	env := NewEnvironment()
	env.Set(fn.Name, 0)
	for idx, param := range fn.Params {
		env.Set(param, args[idx])
	}

	if err := i.execScope(fn.Body, env); err != nil {
		return 0, err
	}

	return env.Fetch(fn.Name), nil
}

// execScope runs a scope's statements in order. The first statement that
// fails aborts the scope and the error propagates unchanged.
func (i *Interpreter) execScope(scope *ast.Scope, env *Environment) *errors.ScriptError {
	for _, stmt := range scope.Statements {
		if err := i.execStatement(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execStatement(stmt ast.Statement, env *Environment) *errors.ScriptError {
	switch s := stmt.(type) {
	case *ast.AssignStatement:
		value, err := i.evalExpression(s.Value, env)
		if err != nil {
			return err
		}
		env.Set(s.Target, value)
		return nil

	case *ast.PredicateBlock:
		return i.execPredicate(s, env)

	default:
		panic(fmt.Sprintf("interp: unexpected statement node %T", stmt))
	}
}

// execPredicate runs an if or while block. A predicate variable referenced
// here for the first time is defined as 0 and the block is skipped without
// running the body even once.
func (i *Interpreter) execPredicate(block *ast.PredicateBlock, env *Environment) *errors.ScriptError {
	if !env.Defined(block.Predicate) {
		env.Set(block.Predicate, 0)
		return nil
	}

	switch block.Kind {
	case ast.PredicateIf:
		if env.Fetch(block.Predicate) != 0 {
			return i.execScope(block.Body, env)
		}
	case ast.PredicateWhile:
		for env.Fetch(block.Predicate) != 0 {
			if err := i.execScope(block.Body, env); err != nil {
				return err
			}
		}
	}

	return nil
}

func (i *Interpreter) evalExpression(expr ast.Expression, env *Environment) (int64, *errors.ScriptError) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return e.Value, nil

	case *ast.BuiltinOp:
		left, right := env.Fetch(e.Left), env.Fetch(e.Right)
		value, err := builtins[e.Op](left, right)
		if err != nil {
			return 0, errors.New(errors.RuntimeError, e.Line, "%v", err)
		}
		return value, nil

	case *ast.CallExpression:
		return i.evalCall(e, env)

	default:
		panic(fmt.Sprintf("interp: unexpected expression node %T", expr))
	}
}

// evalCall resolves the callee by name against the function table and
// invokes it in a fresh environment. Resolution failures surface here only
// when the static pass was skipped: a missing callee is a NameError, a
// callee with a different parameter count a TypeError, both at the call's
// line. Arguments are read from the caller's environment with the
// implicit-zero rule before the callee starts.
func (i *Interpreter) evalCall(call *ast.CallExpression, env *Environment) (int64, *errors.ScriptError) {
	fn := i.program.Lookup(call.Callee)
	if fn == nil {
		return 0, errors.New(errors.NameError, call.Line, "unknown function %q", call.Callee)
	}
	if len(fn.Params) != len(call.Args) {
		return 0, errors.New(errors.TypeError, call.Line,
			"%s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(call.Args))
	}

	args := make([]int64, len(call.Args))
	for idx, name := range call.Args {
		args[idx] = env.Fetch(name)
	}

	return i.invoke(fn, args)
}
