// Package config loads rulec's project-level defaults and CLI
// preferences from rulec.yaml, decoupled from CLI flag parsing so it can
// be reused by any tool that needs project configuration without
// importing cobra.
package config

// Config is the top-level shape of rulec.yaml/rulec.yml.
type Config struct {
	// ClassName is the default class_name passed to compiler.Options
	// when a command's --class-name flag is not set.
	ClassName string `koanf:"class_name"`

	// PackageName is the default package_name passed to compiler.Options.
	PackageName string `koanf:"package_name"`

	// OutputDir is where generated Java source is written.
	OutputDir string `koanf:"output_dir"`

	// TypeInferenceEnabled mirrors compiler.Options.TypeInferenceEnabled.
	TypeInferenceEnabled bool `koanf:"type_inference_enabled"`

	// GenerateNullChecks mirrors compiler.Options.GenerateNullChecks.
	GenerateNullChecks bool `koanf:"generate_null_checks"`

	// LogFormat selects the slog handler: "text" or "json".
	LogFormat string `koanf:"log_format"`
}
