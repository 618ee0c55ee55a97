package main

import (
	"fmt"
	"os"

	"github.com/thorn-lang/thorn/internal/diagnostics"
	"github.com/thorn-lang/thorn/internal/fingerprint"
	"github.com/thorn-lang/thorn/internal/interpreter"
	"github.com/thorn-lang/thorn/internal/lexer"
	"github.com/thorn-lang/thorn/internal/parser"
	"github.com/thorn-lang/thorn/internal/resolver"
)

// runFile reads path, runs it to completion, and returns whether the
// run finished without any diagnostic (the caller maps that to a
// process exit code).
func runFile(path string, useColor bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("Could not read file: %s", path)
	}

	source := string(data)
	reporter := diagnostics.NewReporter(path, source)

	digest := fingerprint.Source(source)
	debugLog("run", "file", path, "digest", digest)

	ok := runSource(reporter, source, false)
	printDiagnostics(reporter, useColor)
	return ok && !reporter.HadError(), nil
}

// runSource scans, parses, resolves, and interprets source against a
// fresh Interpreter (file mode never reuses state across runs). It
// returns false as soon as any stage reports an error, short-circuiting
// the remaining stages exactly as the pipeline's propagation rules
// require.
func runSource(reporter *diagnostics.Reporter, source string, repl bool) bool {
	lx := lexer.New(reporter)
	tokens, ok := lx.ScanTokens(source)
	if !ok {
		return false
	}

	p := parser.New(reporter)
	statements := p.Parse(tokens)
	if reporter.HadError() {
		return false
	}

	res := resolver.New(reporter)
	res.Resolve(statements)
	if reporter.HadError() {
		return false
	}

	in := interpreter.New(reporter, os.Stdout, repl)
	in.Interpret(statements)
	return !reporter.HadError()
}

func printDiagnostics(reporter *diagnostics.Reporter, useColor bool) {
	if !reporter.HadError() {
		return
	}
	for i, d := range reporter.Diagnostics() {
		if i > 0 {
			fmt.Fprintln(os.Stderr)
		}
		fmt.Fprintln(os.Stderr, colorize(reporter.Format(d), colorRed, useColor))
	}
}
