// Package config handles configuration management for podkit.
//
// Configuration is layered, later layers winning:
//
//  1. built-in defaults (embedded/defaults.toml)
//  2. the user config, $XDG_CONFIG_HOME/podkit/config.toml or $PODKIT_CONFIG
//  3. podkit.toml in the project directory
//  4. PODKIT_<SECTION>_<KEY> environment variables
//  5. explicit overrides, usually command-line flags
//
// Example podkit.toml:
//
//	[install]
//	clean = false
//
//	[cache]
//	max_size_mb = 1024
//	aggressive = true
package config
