package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWithSourceLine(t *testing.T) {
	r := NewReporter("test.thorn", "var x = 1\nprint y;")
	r.Report(2, 6, RuntimeError, "Undefined variable 'y'.")

	got := r.Format(r.Diagnostics()[0])
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "print y;", lines[0])
	assert.Equal(t, strings.Repeat(" ", 6)+"^ -- Here", lines[1])
	assert.Equal(t, "test.thorn @ Line 2 - RuntimeError: Undefined variable 'y'.", lines[2])
}

func TestFormatWithoutSourceShiftsCaretByOne(t *testing.T) {
	r := NewReporter("REPL", "")
	r.Report(1, 3, TokenError, "Unexpected character: @")

	got := r.Format(r.Diagnostics()[0])
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Repeat(" ", 4)+"^ -- Here", lines[0])
	assert.Equal(t, "REPL @ Line 1 - TokenError: Unexpected character: @", lines[1])
}

func TestReportAndHadError(t *testing.T) {
	r := NewReporter("t", "")
	assert.False(t, r.HadError())
	r.Report(1, 1, ParserError, "Expect expression.")
	assert.True(t, r.HadError())
	assert.Len(t, r.Diagnostics(), 1)
}

func TestResetClearsDiagnostics(t *testing.T) {
	r := NewReporter("t", "")
	r.Report(1, 1, ParserError, "boom")
	require.True(t, r.HadError())
	r.Reset("next line")
	assert.False(t, r.HadError())
	assert.Equal(t, "next line", r.Source)
}

func TestPrintWritesEveryDiagnostic(t *testing.T) {
	r := NewReporter("t", "")
	r.Report(1, 1, ParserError, "first")
	r.Report(2, 1, RuntimeError, "second")

	var buf bytes.Buffer
	r.Print(&buf)
	out := buf.String()
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
}

func TestSuggestFindsCloseMatch(t *testing.T) {
	got := Suggest("counte", []string{"counter", "other"})
	assert.Equal(t, " (did you mean 'counter'?)", got)
}

func TestSuggestEmptyWhenNoCandidates(t *testing.T) {
	assert.Equal(t, "", Suggest("x", nil))
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "TokenError", TokenError.String())
	assert.Equal(t, "ParserError", ParserError.String())
	assert.Equal(t, "RuntimeError", RuntimeError.String())
	assert.Equal(t, "ResolverError", ResolverError.String())
}
