package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a configuration loader for the given workspace root.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (SRCJUMP_*)
// 2. Config file (.srcjump/config.yml or .srcjump/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".srcjump")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("SRCJUMP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Editor configuration
	v.BindEnv("editor.preferred")
	v.BindEnv("editor.fallback")
	v.BindEnv("editor.override_command")

	// Server configuration
	v.BindEnv("server.host")
	v.BindEnv("server.port")

	// Watch configuration
	v.BindEnv("watch.debounce_millis")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine - defaults + env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("workspace.include", defaults.Workspace.Include)
	v.SetDefault("workspace.exclude", defaults.Workspace.Exclude)

	v.SetDefault("editor.preferred", defaults.Editor.Preferred)
	v.SetDefault("editor.fallback", defaults.Editor.Fallback)
	v.SetDefault("editor.override_command", defaults.Editor.OverrideCommand)

	v.SetDefault("server.host", defaults.Server.Host)
	v.SetDefault("server.port", defaults.Server.Port)

	v.SetDefault("scoring.segment_match", defaults.Scoring.SegmentMatch)
	v.SetDefault("scoring.adjacent_pair", defaults.Scoring.AdjacentPair)
	v.SetDefault("scoring.last_segment", defaults.Scoring.LastSegment)
	v.SetDefault("scoring.substring", defaults.Scoring.Substring)
	v.SetDefault("scoring.whole_word", defaults.Scoring.WholeWord)
	v.SetDefault("scoring.line_prefix", defaults.Scoring.LinePrefix)

	v.SetDefault("watch.debounce_millis", defaults.Watch.DebounceMillis)
}

// Validate checks a loaded configuration for values the core cannot work with.
func Validate(cfg *Config) error {
	if len(cfg.Workspace.Include) == 0 {
		return fmt.Errorf("workspace.include must list at least one glob")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in range 1-65535, got %d", cfg.Server.Port)
	}
	if cfg.Scoring.Substring <= 0 || cfg.Scoring.WholeWord <= 0 || cfg.Scoring.LinePrefix <= 0 {
		return fmt.Errorf("scoring multipliers must be positive")
	}
	if cfg.Watch.DebounceMillis < 0 {
		return fmt.Errorf("watch.debounce_millis must not be negative")
	}
	return nil
}

// LoadFromDir loads configuration from a specific workspace root.
func LoadFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}

// LoadFromCwd loads configuration using the current working directory as root.
func LoadFromCwd() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}
