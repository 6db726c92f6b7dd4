// Package config loads, normalizes, and validates linkarr configuration.
//
// Configuration comes from a TOML file (default ~/.config/linkarr/config.toml
// or ./linkarr.toml), optionally seeded from a .env file, with a small set of
// environment overrides for containerized deployments. All path fields are
// expanded and absolute after Load returns, and every component receives the
// resulting Config as an explicit value rather than reading globals.
package config
