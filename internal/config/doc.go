// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.aitasks/aitasks.toml or OS-specific config directory)
// 3. Project config file (aitasks.toml or .aitasks.toml in the working
//    directory, or the file named by AITASKS_CONFIG)
// 4. Environment variables (AITASKS_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.aitasks/aitasks.toml (preferred)
// - Windows: %APPDATA%\aitasks\aitasks.toml
// - macOS: ~/Library/Application Support/aitasks/aitasks.toml
// - Linux/BSD: $XDG_CONFIG_HOME/aitasks/aitasks.toml or ~/.config/aitasks/aitasks.toml
//
// The keyword tables ([keywords] and [[triggers]]) are checked against an
// embedded JSON Schema; see Validate.
package config
