package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rulelang/rulec/ast/irjson"
	"github.com/rulelang/rulec/compiler"
	"github.com/rulelang/rulec/resolver/testclassloader"
)

func newCompileCmd() *cobra.Command {
	var (
		className     string
		packageName   string
		outputDir     string
		typeInference bool
		nullChecks    bool
	)

	cmd := &cobra.Command{
		Use:   "compile <ir-fixture.json>",
		Short: "Compile a JSON IR fixture into host source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := irjson.DecodeFile(args[0])
			if err != nil {
				return err
			}

			if className == "" {
				className = cfg.ClassName
			}
			if outputDir == "" {
				outputDir = cfg.OutputDir
			}
			if !cmd.Flags().Changed("type-inference") {
				typeInference = cfg.TypeInferenceEnabled
			}
			if !cmd.Flags().Changed("null-checks") {
				nullChecks = cfg.GenerateNullChecks
			}

			opts := compiler.Options{
				ClassName:            className,
				PackageName:          packageName,
				TypeInferenceEnabled: typeInference,
				GenerateNullChecks:   nullChecks,
			}
			if typeInference {
				opts.TypeClassLoader = testclassloader.BuiltinRegistry()
			}

			logger.Debug("compiling", "fixture", args[0], "class_name", className)
			result := compiler.Compile(module, opts)

			if !result.OK() {
				fmt.Fprintln(cmd.ErrOrStderr(), "compilation failed:")
				for _, e := range result.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), "  "+e)
				}
				return fmt.Errorf("compile: %d error(s)", len(result.Errors))
			}

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("compile: create output dir %s: %w", outputDir, err)
			}
			for path, source := range result.Files {
				full := filepath.Join(outputDir, path)
				if err := os.WriteFile(full, []byte(source), 0o644); err != nil {
					return fmt.Errorf("compile: write %s: %w", full, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), full)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&className, "class-name", "", "emitted unit's class name (default: rulec.yaml's class_name)")
	cmd.Flags().StringVar(&packageName, "package-name", "", "emitted unit's package/namespace")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory to write generated source into (default: rulec.yaml's output_dir)")
	cmd.Flags().BoolVar(&typeInference, "type-inference", false, "enable type-aware code generation")
	cmd.Flags().BoolVar(&nullChecks, "null-checks", false, "lower multi-step navigation chains to Optional-chaining form")

	return cmd
}
