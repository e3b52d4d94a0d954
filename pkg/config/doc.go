// Package config handles configuration management for mergerfs-consolidate.
// It loads embedded TOML defaults, an optional user TOML file and
// environment variables, in that order, using koanf.
package config
