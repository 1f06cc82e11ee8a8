package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexiscan/lexiscan/internal/engine"
)

func newModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Manage per-language model data.",
	}
	cmd.AddCommand(newModelsListCmd())
	cmd.AddCommand(newModelsInstallCmd())
	return cmd
}

func newModelsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported languages and their models.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, code := range engine.SupportedLanguages() {
				model, err := engine.ModelFor(code)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, model)
			}
			return nil
		},
	}
}

func newModelsInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <language>...",
		Short: "Install model data for one or more languages.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			for _, code := range args {
				if err := a.Engines.Install(code); err != nil {
					return fmt.Errorf("install %s: %w", code, err)
				}
				a.Logger.Info("model data installed", zap.String("language", code))
			}
			return nil
		},
	}
}
