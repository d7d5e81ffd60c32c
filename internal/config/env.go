package config

import (
	"os"
	"strings"

	"github.com/nibzard/aitasks/internal/todo"
	"github.com/nibzard/aitasks/internal/utils"
)

// loadFromEnv overrides config from AITASKS_* environment variables.
func loadFromEnv(cfg *Config) {
	setString := func(key, field string, target *string) {
		if v := os.Getenv(key); v != "" {
			*target = v
			cfg.Sources[field] = SourceEnv
		}
	}
	setBool := func(key, field string, target *bool) {
		if v := os.Getenv(key); v != "" {
			*target = boolFromString(v)
			cfg.Sources[field] = SourceEnv
		}
	}

	setString("AITASKS_LOG_DIR", "log_dir", &cfg.LogDir)
	setString("AITASKS_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("AITASKS_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("AITASKS_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("AITASKS_LOG_CALLER", "log_caller", &cfg.LogCaller)
	setBool("AITASKS_MOUSE", "mouse", &cfg.Mouse)
	setBool("AITASKS_ALT_SCREEN", "alt_screen", &cfg.AltScreen)
	setBool("AITASKS_DISMISS_ON_PICK", "suggestions.dismiss_on_pick", &cfg.Suggestions.DismissOnPick)

	// AITASKS_KEYWORDS_<CATEGORY> replaces one category's keywords with a
	// comma-separated list.
	for _, cat := range todo.Categories() {
		if cat == todo.CategoryGenerale {
			continue
		}
		v := os.Getenv("AITASKS_KEYWORDS_" + strings.ToUpper(cat.Key()))
		if v == "" {
			continue
		}
		if cfg.Keywords == nil {
			cfg.Keywords = make(map[string][]string)
		}
		cfg.Keywords[cat.Key()] = utils.SplitAndTrim(v, ",")
		cfg.Sources["keywords"] = SourceEnv
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
