// Package config loads, normalizes, and validates fileman's TOML
// configuration.
//
// Loading resolves the config path (explicit flag, ~/.config/fileman, or a
// project-local fileman.toml), decodes over built-in defaults, expands ~ in
// every path field, and rejects unsupported scheme, conflict, and logging
// values before any command runs. A sample configuration is embedded for
// `fileman config init`.
package config
