package cli

import (
	"github.com/spf13/cobra"

	"github.com/rulelang/rulec/internal/cli/output"
)

func newDiagnosticsCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "diagnostics",
		Short: "Inspect the diagnostic-kind taxonomy",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every diag.Kind, its default severity, and its recovery behavior",
		RunE: func(cmd *cobra.Command, _ []string) error {
			output.New(cmd.OutOrStdout()).DiagnosticCatalog()
			return nil
		},
	}

	root.AddCommand(list)
	return root
}
