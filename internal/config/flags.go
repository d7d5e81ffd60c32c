package config

import (
	"flag"
)

// parseFlags binds config flags on fs and parses args.
// Only flags that were explicitly set are recorded as flag-sourced.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("aitasks", flag.ContinueOnError)
	}

	fields := map[string]string{
		"log-dir":         "log_dir",
		"log-level":       "log_level",
		"log-format":      "log_format",
		"log-timestamps":  "log_timestamps",
		"log-caller":      "log_caller",
		"mouse":           "mouse",
		"alt-screen":      "alt_screen",
		"dismiss-on-pick": "suggestions.dismiss_on_pick",
	}

	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Directory for session logs")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log records")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log records")
	fs.BoolVar(&cfg.Mouse, "mouse", cfg.Mouse, "Enable mouse input")
	fs.BoolVar(&cfg.AltScreen, "alt-screen", cfg.AltScreen, "Use the terminal's alternate screen")
	fs.BoolVar(&cfg.Suggestions.DismissOnPick, "dismiss-on-pick", cfg.Suggestions.DismissOnPick, "Close the suggestion panel after picking a suggestion")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if field, ok := fields[f.Name]; ok {
			cfg.Sources[field] = SourceFlag
		}
	})
	return nil
}
