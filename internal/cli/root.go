// Package cli provides rulec's command-line interface: a thin shell
// around the compiler package. Config loading and logger setup happen in
// the root command's PersistentPreRunE; rulec has no project layout of
// its own, only a fixture path per invocation.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rulelang/rulec/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "0.1.0"

var (
	cfgFile    string
	logFormat  string
	verbose    bool
	cfg        *config.Config
	logger     *slog.Logger
)

// Execute builds and runs the root command, returning the first error
// encountered.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the rulec command tree, exported so tests can execute
// it against an in-memory buffer instead of the process's real stdio.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rulec",
		Short:         "rulec compiles a business-rules DSL module into host source",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("cli: determine working directory: %w", err)
			}
			if cfgFile != "" {
				dir = cfgFile
			}

			loaded, err := config.Load(dir, cmd.Root().PersistentFlags())
			if err != nil {
				return fmt.Errorf("cli: load config: %w", err)
			}
			cfg = loaded
			if logFormat != "" {
				cfg.LogFormat = logFormat
			}

			logger = newLogger(cfg.LogFormat, verbose)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "directory to load rulec.yaml/.yml from (default: working directory)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log handler: text or json (overrides rulec.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")

	root.AddCommand(newCompileCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newDiagnosticsCmd())

	return root
}

func newLogger(format string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
