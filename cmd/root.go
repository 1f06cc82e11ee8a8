// Package cmd defines the lexiscan command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexiscan/lexiscan/internal/app"
)

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// newApp is the application factory. It is a variable so tests can replace
// it with a mock factory.
var newApp = app.New

// appFrom retrieves the wired application from the command context.
func appFrom(cmd *cobra.Command) (*app.App, error) {
	a, ok := cmd.Context().Value(appKey).(*app.App)
	if !ok || a == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return a, nil
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexiscan",
		Short: "Pluggable linguistic analysis for web pages, files, and stdin.",
		Long: `lexiscan runs a configurable set of linguistic analyzers over a text:
lexical statistics, part-of-speech distributions, named entities, readability,
keywords, sentiment, and embeddings. Input can be a URL, a local file, or
standard input; output is a single JSON report.`,

		SilenceUsage: true,

		// Runs after config is loaded but before the subcommand's RunE; the
		// wired application travels to subcommands via the context.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return fmt.Errorf("initialize application services: %w", err)
			}
			ctx := context.WithValue(cmd.Context(), appKey, a)
			cmd.SetContext(ctx)
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a, ok := cmd.Context().Value(appKey).(*app.App); ok && a != nil {
				a.Close()
			}
		},
	}

	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newAnalyzersCmd())
	cmd.AddCommand(newModelsCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
