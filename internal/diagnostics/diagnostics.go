// Package diagnostics collects and renders the errors produced by every
// stage of the pipeline (scanner, parser, resolver, evaluator) in a single
// three-line format, the way the original interpreter's error reporter did.
package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Kind is the taxonomy of diagnostics this interpreter can raise.
type Kind int

const (
	TokenError Kind = iota
	ParserError
	RuntimeError
	ResolverError
)

func (k Kind) String() string {
	switch k {
	case TokenError:
		return "TokenError"
	case ParserError:
		return "ParserError"
	case RuntimeError:
		return "RuntimeError"
	case ResolverError:
		return "ResolverError"
	default:
		return "Error"
	}
}

// Diagnostic is a single reported problem, anchored to a line/column.
type Diagnostic struct {
	Kind    Kind
	Line    int
	Column  int
	Message string
}

// Reporter accumulates diagnostics for one run and knows how to render
// them against the source text that produced them. It is passed by
// reference into the scanner, parser, and interpreter rather than used
// as a global singleton.
type Reporter struct {
	File   string
	Source string // full source text, empty for REPL lines with no file

	diagnostics []Diagnostic
}

// NewReporter builds a Reporter for the given file name (or "REPL") and
// source text (empty when none is available, e.g. a REPL line already
// consumed).
func NewReporter(file, source string) *Reporter {
	return &Reporter{File: file, Source: source}
}

// Report records a diagnostic at (line, column).
func (r *Reporter) Report(line, column int, kind Kind, message string) {
	r.diagnostics = append(r.diagnostics, Diagnostic{
		Kind:    kind,
		Line:    line,
		Column:  column,
		Message: message,
	})
}

// HadError reports whether any diagnostic has been recorded.
func (r *Reporter) HadError() bool {
	return len(r.diagnostics) > 0
}

// Diagnostics returns every diagnostic recorded so far, in report order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diagnostics
}

// Reset clears accumulated diagnostics and swaps in new source text; the
// REPL reuses one Reporter across lines and calls this before each one.
func (r *Reporter) Reset(source string) {
	r.Source = source
	r.diagnostics = nil
}

// sourceLine returns the 1-indexed line of Source, trimmed, or "" if
// unavailable.
func (r *Reporter) sourceLine(line int) (string, bool) {
	if r.Source == "" {
		return "", false
	}
	lines := strings.Split(r.Source, "\n")
	if line < 1 || line > len(lines) {
		return "", false
	}
	return strings.TrimSpace(lines[line-1]), true
}

// Format renders a single diagnostic as the three canonical lines:
//
//	<trimmed source line, if available>
//	<spaces>^ -- Here
//	<file> @ Line <line> - <Kind>: <message>
func (r *Reporter) Format(d Diagnostic) string {
	var b strings.Builder

	column := d.Column
	if src, ok := r.sourceLine(d.Line); ok && src != "" {
		b.WriteString(src)
		b.WriteByte('\n')
	} else {
		// No source line available: the original reporter shifts the
		// caret one column to the right to compensate.
		column++
	}

	if column < 0 {
		column = 0
	}
	b.WriteString(strings.Repeat(" ", column))
	b.WriteString("^ -- Here\n")

	fmt.Fprintf(&b, "%s @ Line %d - %s: %s", r.File, d.Line, d.Kind, d.Message)

	return b.String()
}

// Print renders and writes every accumulated diagnostic to w, separated
// by blank lines.
func (r *Reporter) Print(w io.Writer) {
	for i, d := range r.diagnostics {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, r.Format(d))
	}
}

// Suggest ranks candidate against the known names visible at the point
// of failure and, if a close match exists, returns a "did you mean"
// clause (including its own leading space) to append to an error
// message. It returns "" when nothing close enough is found.
func Suggest(candidate string, known []string) string {
	if len(known) == 0 {
		return ""
	}
	matches := fuzzy.RankFindFold(candidate, known)
	if len(matches) == 0 {
		return ""
	}
	matches.Sort()
	return fmt.Sprintf(" (did you mean '%s'?)", matches[0].Target)
}
