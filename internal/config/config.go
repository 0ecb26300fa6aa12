// Package config loads srcjump configuration from .srcjump/config.yml with
// environment variable overrides.
package config

// Config represents the complete srcjump configuration.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace" mapstructure:"workspace"`
	Editor    EditorConfig    `yaml:"editor" mapstructure:"editor"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Scoring   ScoringConfig   `yaml:"scoring" mapstructure:"scoring"`
	Watch     WatchConfig     `yaml:"watch" mapstructure:"watch"`
}

// WorkspaceConfig defines which files are indexed.
type WorkspaceConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // include globs, relative to root
	Exclude []string `yaml:"exclude" mapstructure:"exclude"` // exclude globs
}

// EditorConfig selects the editors tried by the open dispatcher.
type EditorConfig struct {
	Preferred string `yaml:"preferred" mapstructure:"preferred"` // editor id, e.g. "vscode"
	Fallback  string `yaml:"fallback" mapstructure:"fallback"`   // editor id tried when preferred fails

	// OverrideCommand, when non-empty, is invoked with the target appended
	// before any editor is tried. Usually supplied via SRCJUMP_EDITOR_OVERRIDE_COMMAND.
	OverrideCommand string `yaml:"override_command" mapstructure:"override_command"`
}

// ServerConfig configures the local resolution service.
type ServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// ScoringConfig holds the heuristic scoring constants. The values are
// empirical tuning knobs, kept configurable rather than hard-coded.
type ScoringConfig struct {
	// Relevance scoring for duplicate identifier resolution.
	SegmentMatch int `yaml:"segment_match" mapstructure:"segment_match"`
	AdjacentPair int `yaml:"adjacent_pair" mapstructure:"adjacent_pair"`
	LastSegment  int `yaml:"last_segment" mapstructure:"last_segment"`

	// Line ranking multipliers for clue-based search.
	Substring  float64 `yaml:"substring" mapstructure:"substring"`
	WholeWord  float64 `yaml:"whole_word" mapstructure:"whole_word"`
	LinePrefix float64 `yaml:"line_prefix" mapstructure:"line_prefix"`
}

// WatchConfig configures watch-mode rebuild behavior.
type WatchConfig struct {
	DebounceMillis int `yaml:"debounce_millis" mapstructure:"debounce_millis"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Include: []string{
				"**/*.ts",
				"**/*.tsx",
			},
			Exclude: []string{
				"node_modules/**",
				".git/**",
				"dist/**",
				"build/**",
				"coverage/**",
				"**/*.spec.ts",
				"**/*.d.ts",
			},
		},
		Editor: EditorConfig{
			Preferred: "vscode",
			Fallback:  "sublime",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 7649,
		},
		Scoring: ScoringConfig{
			SegmentMatch: 10,
			AdjacentPair: 20,
			LastSegment:  30,
			Substring:    2,
			WholeWord:    3,
			LinePrefix:   1.5,
		},
		Watch: WatchConfig{
			DebounceMillis: 500,
		},
	}
}
