package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pthm/sqlstrings"
	"github.com/pthm/sqlstrings/pkg/dialect"
)

const (
	maxWalkDepth = 25
)

// Output formats for rendered statements.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config represents the sqlstrings configuration from sqlstrings.yaml.
type Config struct {
	// Rendering defaults, overridable per command by flags.
	Dialect  string `mapstructure:"dialect" json:"dialect"`
	Timezone string `mapstructure:"timezone" json:"timezone"`
	Inline   bool   `mapstructure:"inline" json:"inline"`
	Method   string `mapstructure:"method" json:"method"`
	Output   string `mapstructure:"output" json:"output"`

	Log LogConfig `mapstructure:"log" json:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	// 1. Set defaults first (lowest precedence)
	setDefaults(v)

	// 2. Set up environment variable binding
	v.SetEnvPrefix("SQLSTRINGS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 3. Find and load config file
	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	// 4. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, configPath, err
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dialect", "default")
	v.SetDefault("timezone", "Z")
	v.SetDefault("inline", false)
	v.SetDefault("method", "")
	v.SetDefault("output", OutputText)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for sqlstrings.yaml or sqlstrings.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for range maxWalkDepth {
		for _, name := range []string{"sqlstrings.yaml", "sqlstrings.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// Check for repo boundary (.git file or directory)
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil // No config found, use defaults
}

// Validate checks that enumerated settings hold known values.
func (c *Config) Validate() error {
	if _, err := dialect.Lookup(c.Dialect); err != nil {
		return fmt.Errorf("dialect: %w", err)
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("output: unknown format %q (want %s, %s or %s)", c.Output, OutputText, OutputJSON, OutputYAML)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q (want console or json)", c.Log.Format)
	}
	return nil
}

// ResolvedDialect returns the dialect named by the config.
func (c *Config) ResolvedDialect() (*dialect.Dialect, error) {
	return dialect.Lookup(c.Dialect)
}

// RenderOptions returns render options for the configured defaults.
func (c *Config) RenderOptions() *sqlstrings.Options {
	return &sqlstrings.Options{
		Inline:   c.Inline,
		Timezone: c.Timezone,
		Method:   c.Method,
	}
}
