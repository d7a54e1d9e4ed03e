package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// FileName is the name of the config file.
const FileName = "rulec.yaml"

// FileNameAlt is the alternate name of the config file.
const FileNameAlt = "rulec.yml"

// EnvPrefix is the environment-variable prefix overlaid onto the file
// config, e.g. RULEC_CLASS_NAME overrides class_name.
const EnvPrefix = "RULEC_"

// Load builds a Config by layering, lowest precedence first: built-in
// defaults, rulec.yaml/.yml in dir (if present), RULEC_* environment
// variables, then flags (if non-nil).
func Load(dir string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := &Config{}
	defaults.ApplyDefaults()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"class_name":             defaults.ClassName,
		"output_dir":             defaults.OutputDir,
		"log_format":             defaults.LogFormat,
		"type_inference_enabled": false,
		"generate_null_checks":   false,
	}, "."), nil); err != nil {
		return nil, err
	}

	if configPath := findConfigFile(dir); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// findConfigFile finds the config file in the given directory, returning
// "" if neither name is present.
func findConfigFile(dir string) string {
	yamlPath := filepath.Join(dir, FileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}

	ymlPath := filepath.Join(dir, FileNameAlt)
	if _, err := os.Stat(ymlPath); err == nil {
		return ymlPath
	}

	return ""
}

// FindProjectRoot walks up from startDir to find a directory containing
// rulec.yaml or rulec.yml. Returns "" if none is found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for {
		if findConfigFile(dir) != "" {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
