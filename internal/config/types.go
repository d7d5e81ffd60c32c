package config

import (
	"github.com/nibzard/aitasks/internal/assist"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultLogDir        = "~/.aitasks"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultLogTimestamps = true
	DefaultMouse         = true
	DefaultAltScreen     = true
	DefaultDismissOnPick = true
)

// Config holds the full configuration for aitasks.
type Config struct {
	// Logging
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Terminal
	Mouse     bool `toml:"mouse"`
	AltScreen bool `toml:"alt_screen"`

	Suggestions SuggestionsConfig `toml:"suggestions"`

	// Keywords overrides the keyword list of a category, keyed by the
	// lower-case category name. Missing categories keep built-in keywords.
	Keywords map[string][]string `toml:"keywords,omitempty"`

	// Triggers replaces the built-in suggestion table when non-empty.
	Triggers []assist.Trigger `toml:"triggers,omitempty"`

	// Files lists the config files that were read, in load order.
	Files []string `toml:"-"`
	// Warnings collects non-fatal problems such as unknown keys.
	Warnings []string `toml:"-"`
	// Sources records where each top-level value came from.
	Sources map[string]ConfigSource `toml:"-"`
}

// SuggestionsConfig configures the suggestion panel.
type SuggestionsConfig struct {
	// DismissOnPick closes the panel after a suggestion is added.
	DismissOnPick bool `toml:"dismiss_on_pick"`
}

// AssistOptions returns the keyword tables as assist engine options.
func (c *Config) AssistOptions() assist.Options {
	return assist.Options{
		Keywords: c.Keywords,
		Triggers: c.Triggers,
	}
}

// Source returns where a field's value came from.
func (c *Config) Source(field string) ConfigSource {
	if s, ok := c.Sources[field]; ok {
		return s
	}
	return SourceDefault
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"mouse",
		"alt_screen",
		"suggestions.dismiss_on_pick",
		"keywords",
		"triggers",
	}
}
