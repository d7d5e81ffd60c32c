package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// WriteTOML writes the effective configuration to w as TOML.
func (c *Config) WriteTOML(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.Indent = "  "
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# aitasks configuration file
# Values can be overridden by AITASKS_* environment variables or CLI flags

# Session log directory (supports ~ and $VAR expansion)
log_dir = "~/.aitasks"

# Log level: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

# Include timestamps and caller location in log records
log_timestamps = true
log_caller = false

# Terminal behavior
mouse = true
alt_screen = true

[suggestions]
# Close the suggestion panel after a suggestion is added.
# Set to false to keep it open and add several suggestions in a row.
dismiss_on_pick = true

# Keyword lists per category (lavoro, shopping, finanze, studio).
# A listed category replaces its built-in keywords; others keep theirs.
# Matching is a case-insensitive substring test.
# [keywords]
# lavoro = ["chiama", "email", "meeting", "riunione", "progetto", "inviare"]
# shopping = ["compra", "spesa", "latte", "pane", "ordine", "amazon"]
# finanze = ["paga", "banca", "bolletta", "soldi"]
# studio = ["studia", "leggi", "libro", "esame"]

# Suggestion triggers, checked in order; the first match wins.
# Defining any trigger replaces the built-in table.
# [[triggers]]
# keywords = ["festa", "party"]
# suggestions = ["Compra bevande", "Invita amici", "Scegli musica", "Ordina pizza"]
#
# [[triggers]]
# keywords = ["viaggio", "vacanza"]
# suggestions = ["Prenota volo", "Prenota hotel", "Fai valigia", "Controlla documenti"]
`
}
