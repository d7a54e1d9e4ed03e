package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rulelang/rulec/analyzer"
	"github.com/rulelang/rulec/ast/irjson"
	"github.com/rulelang/rulec/internal/cli/output"
	"github.com/rulelang/rulec/resolver"
	"github.com/rulelang/rulec/resolver/testclassloader"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <ir-fixture.json>",
		Short: "Run only the semantic analyzer and print its diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := irjson.DecodeFile(args[0])
			if err != nil {
				return err
			}

			logger.Debug("checking", "fixture", args[0])
			result := analyzer.Analyze(module, resolver.New(testclassloader.BuiltinRegistry()))
			logger.Debug("check complete", "session_id", result.Diagnostics.SessionID, "diagnostics", len(result.Diagnostics.Items()))

			r := output.New(cmd.OutOrStdout())
			r.Diagnostics(result.Diagnostics.Items())

			if !result.OK() {
				return fmt.Errorf("check: module has error-severity diagnostics")
			}
			return nil
		},
	}
	return cmd
}
