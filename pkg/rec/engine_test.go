package rec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireScriptError asserts that err is a *Error with the given line and
// kind.
func requireScriptError(t *testing.T, err error, line int, kind ErrorKind) *Error {
	t.Helper()

	require.Error(t, err)
	scriptErr, ok := err.(*Error)
	require.True(t, ok, "expected *rec.Error, got %T: %v", err, err)
	assert.Equal(t, kind, scriptErr.Kind)
	assert.Equal(t, line, scriptErr.Line)
	return scriptErr
}

const factorialSource = `def fact n
 b = eq n zero
 if b
  fact = 1
 nb = eq b zero
 if nb
  one = 1
  m = sub n one
  r = fact m
  fact = mul n r`

func TestEvaluateFactorial(t *testing.T) {
	result, err := Evaluate(factorialSource, "fact", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(120), result)
}

// TestFactorialQuirk: without seeding one, `sub n one` subtracts an
// implicit zero, so the helper returns its argument unchanged. The
// corrected factorial above assigns one before the recursive branch.
func TestFactorialQuirk(t *testing.T) {
	result, err := Evaluate("def dec n\n dec = sub n one", "dec", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), result)
}

// TestEvaluateCountdown: the while-loop countdown stops at 1. Seeding the
// counter goes through add because a lone identifier on the right-hand
// side is a zero-argument call.
func TestEvaluateCountdown(t *testing.T) {
	source := `def count n
 one = 1
 count = add n zero
 cond = gt count one
 while cond
  count = sub count one
  cond = gt count one`

	result, err := Evaluate(source, "count", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result)
}

// TestCountdownCopyQuirk: the naive countdown seeds its counter with
// `count = n`, which parses as a zero-argument call to an undefined
// function and is rejected by the static pass at that line.
func TestCountdownCopyQuirk(t *testing.T) {
	source := `def count n
 one = 1
 count = n
 cond = gt count one
 while cond
  count = sub count one
  cond = gt count one`

	_, err := Evaluate(source, "count", 5)
	requireScriptError(t, err, 3, SyntaxError)
}

func TestEvaluateDivisionByZero(t *testing.T) {
	_, err := Evaluate("def f a b\n x = div a b\n f = add x x", "f", 1, 0)
	requireScriptError(t, err, 2, RuntimeError)
}

func TestEvaluateUnknownEntry(t *testing.T) {
	_, err := Evaluate("def f\n f = 1", "g")
	requireScriptError(t, err, 0, RuntimeError)
}

func TestEvaluateEntryArityMismatch(t *testing.T) {
	_, err := Evaluate("def f x\n f = add x x", "f")
	requireScriptError(t, err, 1, RuntimeError)
}

// TestStaticResolutionPrecedence: a call that cannot resolve statically is
// a SyntaxError at the call line, never a runtime NameError.
func TestStaticResolutionPrecedence(t *testing.T) {
	source := "def f x\n f = add x x\ndef g\n y = f\n g = add y y"

	_, err := Evaluate(source, "g")
	requireScriptError(t, err, 4, SyntaxError)
}

func TestBuiltinShadowingRejected(t *testing.T) {
	_, err := Evaluate("def add x y\n add = x", "add", 1, 2)
	requireScriptError(t, err, 1, SyntaxError)
}

func TestTopLevelGarbageRejected(t *testing.T) {
	_, err := Evaluate("x = 1", "f")
	requireScriptError(t, err, 1, SyntaxError)
}

// TestWithStaticCheckDisabled: on an unchecked tree call resolution moves
// to run time and reports NameError/TypeError instead.
func TestWithStaticCheckDisabled(t *testing.T) {
	engine, err := New(WithStaticCheck(false))
	require.NoError(t, err)

	program, err := engine.Compile("def f x\n f = add x x\ndef g\n y = f\n g = add y y")
	require.NoError(t, err, "compile must succeed without the static pass")

	_, callErr := program.Call("g")
	requireScriptError(t, callErr, 4, TypeError)

	program, err = engine.Compile("def h\n x = missing a\n h = add x x")
	require.NoError(t, err)

	_, callErr = program.Call("h")
	requireScriptError(t, callErr, 2, NameError)
}

// TestProgramReuse: one compiled program serves repeated dispatch with no
// state carried between calls.
func TestProgramReuse(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	program, err := engine.Compile(factorialSource)
	require.NoError(t, err)

	for _, tt := range []struct {
		arg  int64
		want int64
	}{{0, 1}, {1, 1}, {5, 120}, {6, 720}} {
		result, callErr := program.Call("fact", tt.arg)
		require.NoError(t, callErr)
		assert.Equal(t, tt.want, result, "fact(%d)", tt.arg)
	}
}

// TestEvaluateDeterminism: evaluate is a pure function of its inputs.
func TestEvaluateDeterminism(t *testing.T) {
	for i := 0; i < 3; i++ {
		result, err := Evaluate(factorialSource, "fact", 4)
		require.NoError(t, err)
		assert.Equal(t, int64(24), result)
	}
}

func TestProgramAST(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	program, err := engine.Compile("def f x\n f = add x x")
	require.NoError(t, err)

	tree := program.AST()
	require.NotNil(t, tree)
	require.Len(t, tree.Functions, 1)
	assert.Equal(t, "f", tree.Functions[0].Name)
	assert.Equal(t, "def f x\n f = add x x\n", tree.String())
	assert.Equal(t, "def f x\n f = add x x", program.Source())
}

func TestErrorFormatting(t *testing.T) {
	_, err := Evaluate("def f\n x = div one zero\n f = add x x", "f")
	scriptErr := requireScriptError(t, err, 2, RuntimeError)

	assert.Equal(t, "RuntimeError at line 2: division by zero", scriptErr.Error())
	formatted := scriptErr.Format("def f\n x = div one zero\n f = add x x", false)
	assert.Contains(t, formatted, "   2 |  x = div one zero")
}
