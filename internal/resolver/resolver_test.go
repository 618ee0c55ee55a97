package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thorn-lang/thorn/internal/diagnostics"
	"github.com/thorn-lang/thorn/internal/lexer"
	"github.com/thorn-lang/thorn/internal/parser"
)

func resolveSource(t *testing.T, source string) *diagnostics.Reporter {
	t.Helper()
	reporter := diagnostics.NewReporter("test", source)
	toks, ok := lexer.New(reporter).ScanTokens(source)
	require.True(t, ok)
	statements := parser.New(reporter).Parse(toks)
	require.False(t, reporter.HadError())

	New(reporter).Resolve(statements)
	return reporter
}

func TestSelfReferentialInitializerIsResolverError(t *testing.T) {
	reporter := resolveSource(t, `var a = 1; { var a = a; }`)
	require.True(t, reporter.HadError())
	require.Equal(t, diagnostics.ResolverError, reporter.Diagnostics()[0].Kind)
}

func TestOrdinaryShadowingInInitializerIsFine(t *testing.T) {
	// `var a = a;` at global scope reads the outer `a`, not itself —
	// only a *local* re-declaration referencing its own not-yet-bound
	// slot is flagged.
	reporter := resolveSource(t, `var a = 1; var a = a; fun f() { var b = a; return b; }`)
	require.False(t, reporter.HadError())
}

func TestDepthsComputedForLocalVariable(t *testing.T) {
	reporter := diagnostics.NewReporter("test", "")
	source := `{ var a = 1; { print a; } }`
	reporter.Reset(source)
	toks, ok := lexer.New(reporter).ScanTokens(source)
	require.True(t, ok)
	statements := parser.New(reporter).Parse(toks)
	require.False(t, reporter.HadError())

	r := New(reporter)
	r.Resolve(statements)
	require.False(t, reporter.HadError())
	require.NotEmpty(t, r.Depths, "resolver should compute at least one depth even though the evaluator never consumes it")
}
