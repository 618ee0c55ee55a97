package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/thorn-lang/thorn/internal/config"
	"github.com/thorn-lang/thorn/internal/diagnostics"
	"github.com/thorn-lang/thorn/internal/interpreter"
	"github.com/thorn-lang/thorn/internal/lexer"
	"github.com/thorn-lang/thorn/internal/parser"
	"github.com/thorn-lang/thorn/internal/replhistory"
)

// runREPL starts the interactive prompt. A single scanner, parser, and
// interpreter persist across lines so that variable and function
// definitions carry over, matching the external-interface contract.
func runREPL(in io.Reader, out io.Writer, useColor bool, cfg *config.Config) {
	reporter := diagnostics.NewReporter("REPL", "")
	lx := lexer.New(reporter)
	p := parser.New(reporter)
	evaluator := interpreter.New(reporter, out, true)

	historyPath := historyFilePath(cfg)
	hist, err := replhistory.Load(historyPath)
	if err != nil {
		debugLog("repl", "history load failed", "err", err.Error())
		hist = &replhistory.History{}
	}

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "> ")
		if f, ok := out.(*os.File); ok {
			_ = f.Sync()
		}

		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			break // EOF
		}

		reporter.Reset(line)

		tokens, ok := lx.ScanTokens(line)
		if ok {
			statements := p.Parse(tokens)
			if !reporter.HadError() {
				evaluator.Interpret(statements)
			}
		}

		if reporter.HadError() {
			printDiagnostics(reporter, useColor)
		} else {
			hist.Append(line)
		}

		if readErr != nil {
			break // EOF after a final unterminated line
		}
	}

	if saveErr := hist.Save(historyPath); saveErr != nil {
		debugLog("repl", "history save failed", "err", saveErr.Error())
	}
}

func historyFilePath(cfg *config.Config) string {
	if cfg != nil && cfg.HistoryFile != "" {
		return expandHome(cfg.HistoryFile)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".thorn_history.cbor"
	}
	return filepath.Join(home, ".thorn_history.cbor")
}

func expandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
