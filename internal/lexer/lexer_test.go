package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thorn-lang/thorn/internal/diagnostics"
	"github.com/thorn-lang/thorn/internal/token"
)

func scan(t *testing.T, source string) ([]token.Token, *diagnostics.Reporter) {
	t.Helper()
	reporter := diagnostics.NewReporter("test", source)
	toks, ok := New(reporter).ScanTokens(source)
	if !ok {
		require.True(t, reporter.HadError())
	}
	return toks, reporter
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks, reporter := scan(t, "(){},.;?:-+*/ != = == < <= > >= -= += *=")
	require.False(t, reporter.HadError())

	want := []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Semicolon, token.Question, token.Colon,
		token.Minus, token.Plus, token.Star, token.Slash,
		token.BangEqual, token.Equal, token.EqualEqual,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual,
		token.MinusEqual, token.PlusEqual, token.StarEqual,
		token.EOF,
	}
	assert.Equal(t, want, kinds(toks))
}

func TestScanLineComment(t *testing.T) {
	toks, reporter := scan(t, "1 // this is ignored\n2")
	require.False(t, reporter.HadError())
	require.Len(t, toks, 3)
	assert.Equal(t, token.Number, toks[0].Kind)
	assert.Equal(t, 1.0, toks[0].Literal)
	assert.Equal(t, token.Number, toks[1].Kind)
	assert.Equal(t, 2.0, toks[1].Literal)
}

func TestScanStringBothQuoteStyles(t *testing.T) {
	toks, reporter := scan(t, `"double" 'single'`)
	require.False(t, reporter.HadError())
	require.Len(t, toks, 3)
	assert.Equal(t, "double", toks[0].Literal)
	assert.Equal(t, "single", toks[1].Literal)
}

func TestScanUnterminatedString(t *testing.T) {
	_, reporter := scan(t, `"never closes`)
	require.True(t, reporter.HadError())
	assert.Equal(t, diagnostics.TokenError, reporter.Diagnostics()[0].Kind)
}

func TestScanMultilineStringUpdatesLine(t *testing.T) {
	toks, reporter := scan(t, "\"a\nb\"\nprint")
	require.False(t, reporter.HadError())
	require.Len(t, toks, 3)
	assert.Equal(t, "a\nb", toks[0].Literal)
	assert.Equal(t, 3, toks[1].Position.Line)
}

func TestScanNumbers(t *testing.T) {
	toks, reporter := scan(t, "0 3 3.14 1000.5")
	require.False(t, reporter.HadError())
	require.Len(t, toks, 5)
	want := []float64{0, 3, 3.14, 1000.5}
	for i, w := range want {
		assert.Equal(t, w, toks[i].Literal)
	}
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	toks, reporter := scan(t, "var x = foo_bar and true or false")
	require.False(t, reporter.HadError())
	want := []token.Kind{
		token.Var, token.Identifier, token.Equal, token.Identifier,
		token.And, token.True, token.Or, token.False, token.EOF,
	}
	assert.Equal(t, want, kinds(toks))
}

func TestScanUnexpectedCharacterAccumulatesAndContinues(t *testing.T) {
	_, reporter := scan(t, "1 @ 2 # 3")
	require.True(t, reporter.HadError())
	assert.Len(t, reporter.Diagnostics(), 2)
}

func TestScanDeterminism(t *testing.T) {
	source := "var x = 1 + 2 * (3 - 4) / 5;"
	first, _ := scan(t, source)
	second, _ := scan(t, source)
	assert.Equal(t, first, second)
}
