package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thorn-lang/thorn/internal/ast"
	"github.com/thorn-lang/thorn/internal/diagnostics"
	"github.com/thorn-lang/thorn/internal/lexer"
	"github.com/thorn-lang/thorn/internal/parser"
)

// run parses and interprets source against a fresh Interpreter,
// returning everything printed to stdout and whether any diagnostic
// was reported.
func run(t *testing.T, source string) (string, *diagnostics.Reporter) {
	t.Helper()
	reporter := diagnostics.NewReporter("test", source)
	toks, ok := lexer.New(reporter).ScanTokens(source)
	require.True(t, ok)

	statements := parser.New(reporter).Parse(toks)
	require.False(t, reporter.HadError(), "unexpected parse error")

	var out bytes.Buffer
	New(reporter, &out, false).Interpret(statements)
	return out.String(), reporter
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestScenarioA_Arithmetic(t *testing.T) {
	out, reporter := run(t, `print 1 + 2;`)
	require.False(t, reporter.HadError())
	assert.Equal(t, []string{"3"}, lines(out))
}

func TestScenarioB_FibonacciLoop(t *testing.T) {
	out, reporter := run(t, `
var a = 0;
var b = 1;
for (var i = 0; i < 5; i = i + 1) { print a; var t = a + b; a = b; b = t; }
`)
	require.False(t, reporter.HadError())
	assert.Equal(t, []string{"0", "1", "1", "2", "3"}, lines(out))
}

func TestScenarioC_ClosureCounter(t *testing.T) {
	out, reporter := run(t, `
fun makeCounter() { var n = 0; fun inc() { n = n + 1; return n; } return inc; }
var c = makeCounter(); print c(); print c(); print c();
`)
	require.False(t, reporter.HadError())
	assert.Equal(t, []string{"1", "2", "3"}, lines(out))
}

func TestScenarioD_StringConcatenation(t *testing.T) {
	out, reporter := run(t, `print "a" + "b"; print "num=" + 7;`)
	require.False(t, reporter.HadError())
	assert.Equal(t, []string{"ab", "num=7"}, lines(out))
}

func TestScenarioE_BreakOutOfWhile(t *testing.T) {
	out, reporter := run(t, `
var i = 0; while (i < 3) { if (i == 2) break; print i; i = i + 1; } print "done";
`)
	require.False(t, reporter.HadError())
	assert.Equal(t, []string{"0", "1", "done"}, lines(out))
}

func TestScenarioF_DivisionByNonZeroIsInfNotError(t *testing.T) {
	out, reporter := run(t, `print 1/0;`)
	require.False(t, reporter.HadError())
	assert.Equal(t, []string{"inf"}, lines(out))
}

func TestScenarioF_DivisionByZeroOverZeroIsRuntimeError(t *testing.T) {
	_, reporter := run(t, `print 0/0;`)
	require.True(t, reporter.HadError())
	assert.Contains(t, reporter.Diagnostics()[0].Message, "divide by 0")
}

func TestTruthinessTable(t *testing.T) {
	cases := map[string]bool{
		"nil":   false,
		"false": false,
		"true":  true,
		"0":     true,
		`""`:    true,
		"1":     true,
	}
	for literal, want := range cases {
		out, reporter := run(t, `if (`+literal+`) print "t"; else print "f";`)
		require.False(t, reporter.HadError())
		got := strings.TrimSpace(out) == "t"
		assert.Equalf(t, want, got, "truthiness of %s", literal)
	}
}

func TestShortCircuitAndDoesNotCallRight(t *testing.T) {
	out, reporter := run(t, `
fun sideEffect() { print "called"; return true; }
if (false and sideEffect()) { }
print "end";
`)
	require.False(t, reporter.HadError())
	assert.Equal(t, []string{"end"}, lines(out))
}

func TestShortCircuitOrDoesNotCallRight(t *testing.T) {
	out, reporter := run(t, `
fun sideEffect() { print "called"; return true; }
if (true or sideEffect()) { }
print "end";
`)
	require.False(t, reporter.HadError())
	assert.Equal(t, []string{"end"}, lines(out))
}

func TestScopeShadowingVsAssignment(t *testing.T) {
	out, reporter := run(t, `
var x = 1;
{ var x = 2; print x; }
print x;
{ x = 3; }
print x;
`)
	require.False(t, reporter.HadError())
	assert.Equal(t, []string{"2", "1", "3"}, lines(out))
}

func TestArityMismatchReportsExpectedAndActual(t *testing.T) {
	_, reporter := run(t, `
fun f(a, b) { return a + b; }
f(1);
`)
	require.True(t, reporter.HadError())
	assert.Contains(t, reporter.Diagnostics()[0].Message, "Expected 2 arguments but got 1")
}

func TestBreakOutsideLoopIsRuntimeError(t *testing.T) {
	_, reporter := run(t, `break;`)
	require.True(t, reporter.HadError())
	assert.Contains(t, reporter.Diagnostics()[0].Message, "break outside of a loop")
}

func TestBreakInsideFunctionWithNoEnclosingLoopIsRuntimeError(t *testing.T) {
	_, reporter := run(t, `
fun f() { break; }
f();
`)
	require.True(t, reporter.HadError())
	assert.Contains(t, reporter.Diagnostics()[0].Message, "break outside of a loop")
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, reporter := run(t, `print nope;`)
	require.True(t, reporter.HadError())
	assert.Contains(t, reporter.Diagnostics()[0].Message, "Undefined variable 'nope'")
}

func TestAssignToUndefinedIsRuntimeErrorNotImplicitDefine(t *testing.T) {
	// Resolves the `bind` open question strictly: assignment never
	// falls back to defining in the innermost frame.
	_, reporter := run(t, `x = 1;`)
	require.True(t, reporter.HadError())
	assert.Contains(t, reporter.Diagnostics()[0].Message, "Undefined variable 'x'")
}

func TestMixedBooleanEqualityQuirkIsReproduced(t *testing.T) {
	out, reporter := run(t, `print true == 1; print false == 1; print 1 == true;`)
	require.False(t, reporter.HadError())
	assert.Equal(t, []string{"true", "false", "true"}, lines(out))
}

func TestClockBuiltinReturnsNumber(t *testing.T) {
	out, reporter := run(t, `print clock() > 0;`)
	require.False(t, reporter.HadError())
	assert.Equal(t, []string{"true"}, lines(out))
}

func TestNumberFormattingHasNoTrailingZero(t *testing.T) {
	assert.Equal(t, "3", Stringify(3.0))
	assert.Equal(t, "3.5", Stringify(3.5))
}

func TestStringifyCallable(t *testing.T) {
	fn := &Function{name: "f", params: nil, body: nil, closure: NewEnvironment(nil)}
	assert.Equal(t, "<fn>", Stringify(fn))
}

func TestInterpretReturnsLastExpressionValueForREPL(t *testing.T) {
	reporter := diagnostics.NewReporter("REPL", "")
	toks, ok := lexer.New(reporter).ScanTokens("1 + 1;")
	require.True(t, ok)
	statements := parser.New(reporter).Parse(toks)

	var out bytes.Buffer
	last := New(reporter, &out, true).Interpret(statements)
	assert.Equal(t, 2.0, last)
}

func TestBlockRestoresEnclosingEnvironmentEvenOnError(t *testing.T) {
	// A RuntimeError inside a block must not corrupt the caller's
	// ability to keep running in REPL mode; the interpreter halts the
	// *run*, not the process.
	_, reporter := run(t, `{ var x = 0/0; }`)
	require.True(t, reporter.HadError())
}

var _ ast.Expr = (*ast.Literal)(nil) // sanity: ast.Literal implements Expr
