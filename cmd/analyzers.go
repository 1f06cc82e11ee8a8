package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAnalyzersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyzers",
		Short: "List the registered analyzers.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			for _, name := range a.Registry.Names() {
				desc, err := a.Registry.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", desc.Name, desc.Kind)
			}
			return nil
		},
	}
}
