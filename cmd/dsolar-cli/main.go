// Package main provides the D-Solar assistant CLI entrypoint.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Ramsu24/D-Solar-sub001/internal/app"
	"github.com/Ramsu24/D-Solar-sub001/internal/config"
	"github.com/Ramsu24/D-Solar-sub001/internal/observability"
)

const version = "0.3.0"

var (
	cfgFile    string
	outputJSON bool
	verbose    bool

	cfg    *config.Config
	logger *observability.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dsolar-cli",
		Short: "D-Solar assistant CLI for chatting, scoring and knowledge administration",
		Long: `dsolar-cli runs the D-Solar customer assistant from the terminal.

Use this tool to:
- Ask a single question or hold an interactive conversation
- Inspect how a query scores against the FAQ knowledge base
- Import the seed file and list FAQs and packages

All commands support --json for automation.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			level := "warn"
			if verbose {
				level = "debug"
			}
			logger = observability.NewLogger(observability.LogConfig{
				Level:       level,
				Format:      "console",
				Output:      cmd.ErrOrStderr(),
				File:        cfg.Observability.LogFile,
				ServiceName: "dsolar-cli",
			})
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: uses env vars)")
	root.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	root.AddCommand(
		newAskCmd(),
		newChatCmd(),
		newScoreCmd(),
		newSeedCmd(),
		newFAQsCmd(),
		newPackagesCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openApp builds the assistant. Commands that never call the provider pass withProvider=false.
func openApp(ctx context.Context, withProvider bool) (*app.App, error) {
	c := *cfg
	if !withProvider {
		c.Completion.Driver = "none"
	}
	return app.New(ctx, &c, logger)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"version": version,
					"go":      runtime.Version(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dsolar-cli v%s\n", version)
			return nil
		},
	}
}
