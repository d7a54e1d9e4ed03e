package config

// Default configuration values.
const (
	DefaultClassName = "GeneratedRules"
	DefaultOutputDir = "build/generated"
	DefaultLogFormat = "text"
)

// ApplyDefaults fills in every zero-valued field of c with its default.
func (c *Config) ApplyDefaults() {
	if c.ClassName == "" {
		c.ClassName = DefaultClassName
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
}
