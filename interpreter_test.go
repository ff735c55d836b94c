package mufasa

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// run executes src in a fresh environment and fails the test on error.
func run(t *testing.T, src string) *Env {
	t.Helper()
	env, err := New().EvalSource(src)
	require.NoError(t, err)
	return env
}

// runErr executes src and requires a runtime failure of the given kind.
func runErr(t *testing.T, src string, kind RTKind) *RuntimeError {
	t.Helper()
	_, err := New().EvalSource(src)
	require.Error(t, err)
	var rterr *RuntimeError
	require.ErrorAs(t, err, &rterr)
	require.Equal(t, kind, rterr.Kind, "error: %v", err)
	return rterr
}

// runOut executes src and returns the text written by display/show.
func runOut(t *testing.T, src string) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := NewWithOutput(&buf).EvalSource(src)
	require.NoError(t, err)
	return buf.String()
}

func getNum(t *testing.T, env *Env, name string) float64 {
	t.Helper()
	v, ok := env.Get(name)
	require.True(t, ok, "variable %s not bound", name)
	require.Equal(t, VTNumber, v.Tag)
	return v.AsNumber()
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"x = 1 + 2~", 3},
		{"x = 10 - 4~", 6},
		{"x = 6 * 7~", 42},
		{"x = 10 / 2~", 5},
		{"x = 10 / 4~", 2.5},
		{"x = 2 ^ 10~", 1024},
		{"x = 2 ^ 3 ^ 2~", 512},
		{"x = -3 + 5~", 2},
		{"x = 1 + 2 * 3~", 7},
		{"x = (1 + 2) * 3~", 9},
	}
	for _, c := range cases {
		env := run(t, c.src)
		require.Equal(t, c.want, getNum(t, env, "x"), "src: %s", c.src)
	}
}

func TestDivisionByZero(t *testing.T) {
	runErr(t, "x = 10 / 0~", DivisionByZero)

	env := run(t, "x = 10 / 2~")
	require.Equal(t, 5.0, getNum(t, env, "x"))
}

func TestComparisonAndEquality(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"x = 1 < 2~", true},
		{"x = 2 > 3~", false},
		{"x = 1 == 1~", true},
		{"x = 1 != 1~", false},
		{`x = "a" == "a"~`, true},
		{`x = "a" == "b"~`, false},
		// mismatched kinds compare defined-false, never error
		{`x = 1 == "1"~`, false},
		{`x = 1 != "1"~`, true},
		{"x = True == True~", true},
	}
	for _, c := range cases {
		env := run(t, c.src)
		v, ok := env.Get("x")
		require.True(t, ok)
		require.Equal(t, c.want, v.AsBool(), "src: %s", c.src)
	}
}

func TestRelationalNeedsNumbers(t *testing.T) {
	runErr(t, `x = "a" < "b"~`, TypeMismatch)
	runErr(t, "x = True > False~", TypeMismatch)
}

func TestLogicalShortCircuit(t *testing.T) {
	// the right operand must not be evaluated when the left decides
	env := run(t, "x = False && missing.boom()~")
	v, _ := env.Get("x")
	require.False(t, v.AsBool())

	env = run(t, "x = True || missing.boom()~")
	v, _ = env.Get("x")
	require.True(t, v.AsBool())

	// both sides evaluated otherwise
	runErr(t, "x = True && missing.boom()~", UndefinedVariable)
}

func TestLogicalNeedsBooleans(t *testing.T) {
	runErr(t, "x = 1 && True~", TypeMismatch)
	runErr(t, "x = False || 0~", TypeMismatch)
}

func TestUndefinedVariable(t *testing.T) {
	rterr := runErr(t, "x = y + 1~", UndefinedVariable)
	require.Contains(t, rterr.Msg, `"y"`)
}

func TestScopingOuterBindingMutated(t *testing.T) {
	env := run(t, "x = 1~ { x = 2~ }")
	require.Equal(t, 2.0, getNum(t, env, "x"))
}

func TestScopingInnerBindingDiscarded(t *testing.T) {
	env := run(t, "{ y = 2~ }")
	_, ok := env.Get("y")
	require.False(t, ok)
}

func TestScopingNestedBlocks(t *testing.T) {
	env := run(t, "x = 1~ { y = 2~ { x = x + y~ z = 9~ } } ")
	require.Equal(t, 3.0, getNum(t, env, "x"))
	_, ok := env.Get("y")
	require.False(t, ok)
	_, ok = env.Get("z")
	require.False(t, ok)
}

func TestIfElse(t *testing.T) {
	src := "x = 520156~ y = 3~ if (x != 5) { z = x + y~ } else { p = x - y~ }"
	env := run(t, src)
	require.Equal(t, 520159.0, getNum(t, env, "z"))
	_, ok := env.Get("p")
	require.False(t, ok)
}

func TestIfBranchBindingsSurvive(t *testing.T) {
	// a variable created inside a taken branch belongs to the enclosing
	// scope, unlike one created in a bare block or a loop body
	env := run(t, "if (True) { z = 7~ } else { p = 0~ }")
	require.Equal(t, 7.0, getNum(t, env, "z"))
	_, ok := env.Get("p")
	require.False(t, ok)

	env = run(t, "x = 1~ if (x == 1) { x = 2~ y = x + 1~ }")
	require.Equal(t, 2.0, getNum(t, env, "x"))
	require.Equal(t, 3.0, getNum(t, env, "y"))

	// loop bodies still discard their bindings
	env = run(t, "for (i = 0; i < 2; i = i + 1) { if (True) { w = i~ } }")
	_, ok = env.Get("w")
	require.False(t, ok)
}

func TestIfConditionMustBeBoolean(t *testing.T) {
	runErr(t, "if (1) { }", TypeMismatch)
	runErr(t, `while ("yes") { }`, TypeMismatch)
}

func TestWhileLoop(t *testing.T) {
	env := run(t, "i = 0~ total = 0~ while (i < 5) { total = total + i~ i = i + 1~ }")
	require.Equal(t, 10.0, getNum(t, env, "total"))
	require.Equal(t, 5.0, getNum(t, env, "i"))
}

func TestWhileBreak(t *testing.T) {
	env := run(t, "i = 0~ while (True) { i = i + 1~ if (i > 3) { break~ } }")
	require.Equal(t, 4.0, getNum(t, env, "i"))
}

func TestWhileContinue(t *testing.T) {
	// continue skips the counting statement for the first five values
	src := `i = 0~ counted = 0~
while (i < 10) {
  i = i + 1~
  if (i < 6) { continue~ }
  counted = counted + 1~
}`
	env := run(t, src)
	require.Equal(t, 5.0, getNum(t, env, "counted"))
	require.Equal(t, 10.0, getNum(t, env, "i"))
}

func TestForLoopSum(t *testing.T) {
	env := run(t, "y = 0~ for (i = 1; i < 10; i = i + 1) { y = y + i~ }")
	require.Equal(t, 45.0, getNum(t, env, "y"))
}

func TestForLoopVariableScopedToLoop(t *testing.T) {
	env := run(t, "for (i = 0; i < 3; i = i + 1) { }")
	_, ok := env.Get("i")
	require.False(t, ok)
}

func TestForLoopContinueRunsStep(t *testing.T) {
	// continue must still advance i, or the loop would never end
	src := "n = 0~ for (i = 0; i < 5; i = i + 1) { if (i < 3) { continue~ } n = n + 1~ }"
	env := run(t, src)
	require.Equal(t, 2.0, getNum(t, env, "n"))
}

func TestForLoopBreak(t *testing.T) {
	env := run(t, "y = 0~ for (i = 1; i < 100; i = i + 1) { if (i > 4) { break~ } y = y + i~ }")
	require.Equal(t, 10.0, getNum(t, env, "y"))
}

func TestBuiltins(t *testing.T) {
	env := run(t, "a = min(3, 5)~ b = max(3, 5)~ c = squareRoot(16)~")
	require.Equal(t, 3.0, getNum(t, env, "a"))
	require.Equal(t, 5.0, getNum(t, env, "b"))
	require.Equal(t, 4.0, getNum(t, env, "c"))
}

func TestBuiltinErrors(t *testing.T) {
	runErr(t, "x = squareRoot(-4)~", DomainError)
	runErr(t, "x = min(1)~", InvalidArgument)
	runErr(t, `x = max(1, "2")~`, TypeMismatch)
}

func TestUnaryMinus(t *testing.T) {
	env := run(t, "x = 5~ y = -x~")
	require.Equal(t, -5.0, getNum(t, env, "y"))

	runErr(t, "y = -True~", TypeMismatch)
}

func TestMethodCallOnScalarFails(t *testing.T) {
	rterr := runErr(t, "x = 1~ y = x.length()~", NoSuchMethod)
	require.Contains(t, rterr.Msg, "Number")
}

func TestDisplayAndShowOutput(t *testing.T) {
	out := runOut(t, `a = Arrays()~ a.add(1)~ a.add(2)~ a.display()~`)
	require.Equal(t, "[1, 2]\n", out)

	out = runOut(t, `s = StringBeans("hello")~ s.show()~`)
	require.Equal(t, "hello\n", out)
}

func TestOutputOrderFollowsExecution(t *testing.T) {
	src := `s = StringBeans("one")~ t = StringBeans("two")~
for (i = 0; i < 2; i = i + 1) { s.show()~ }
t.show()~`
	require.Equal(t, "one\none\ntwo\n", runOut(t, src))
}

func TestRuntimeErrorCarriesPosition(t *testing.T) {
	rterr := runErr(t, "x = 1~\ny = 10 / 0~", DivisionByZero)
	require.Equal(t, 2, rterr.Line)
	require.Equal(t, 7, rterr.Col)
}

func TestErrorLeavesPriorEffects(t *testing.T) {
	env, err := New().EvalSource("x = 1~ y = 2~ z = boom~")
	require.Error(t, err)
	require.Equal(t, 1.0, getNum(t, env, "x"))
	require.Equal(t, 2.0, getNum(t, env, "y"))
}

func TestExecuteSharedEnv(t *testing.T) {
	// REPL-style: successive programs share one environment
	in := New()
	env := NewEnv()

	prog, err := ParseSource("x = 1~")
	require.NoError(t, err)
	require.NoError(t, in.Execute(prog, env))

	prog, err = ParseSource("y = x + 1~")
	require.NoError(t, err)
	require.NoError(t, in.Execute(prog, env))

	require.Equal(t, 2.0, getNum(t, env, "y"))
}

func TestDumpEnv(t *testing.T) {
	env := run(t, `b = True~ a = 2~ s = "hi"~`)
	require.Equal(t, "a = 2\nb = True\ns = \"hi\"\n", DumpEnv(env))
}
