// Command thorn is the process entry point: it dispatches between the
// interactive REPL and file-execution modes, loads the optional
// project config, and wires diagnostic output to the terminal.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thorn-lang/thorn/internal/config"
)

// buildVersion is overridden at release build time via -ldflags.
var buildVersion = "0.1.0"

var debugLogger *slog.Logger

func debugLog(component, msg string, args ...interface{}) {
	if debugLogger == nil {
		return
	}
	debugLogger.Debug(msg, append([]interface{}{"component", component}, args...)...)
}

func main() {
	var (
		noColor    bool
		debug      bool
		watch      bool
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:           "thorn [script]",
		Short:         "A tree-walking interpreter for the thorn scripting language",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				debugLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}

			useColor := shouldUseColor(noColor)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if noColor {
				cfg.NoColor = true
			}
			if err := cfg.CheckMinVersion(buildVersion); err != nil {
				return err
			}
			useColor = useColor && !cfg.NoColor

			switch len(args) {
			case 0:
				runREPL(os.Stdin, os.Stdout, useColor, cfg)
				return nil
			case 1:
				if watch {
					return watchFile(args[0], useColor)
				}
				ok, err := runFile(args[0], useColor)
				if err != nil {
					return err
				}
				if !ok {
					os.Exit(65)
				}
				return nil
			default:
				fmt.Fprintln(os.Stderr, "Usage: thorn [script]")
				os.Exit(64)
				return nil
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose pipeline logging")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "re-run the script whenever it changes on disk")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".thornrc.yaml", "path to project config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
