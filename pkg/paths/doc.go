// Package paths provides centralized path handling for podkit.
//
// # Environment Variables
//
//   - PODKIT_SANDBOX_ROOT: sandbox location (default: ./Pods)
//   - PODKIT_DATA_DIR: Override XDG data directory (default: $XDG_DATA_HOME/podkit)
//   - PODKIT_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/podkit)
//   - PODKIT_CACHE_DIR: Override XDG cache directory (default: $XDG_CACHE_HOME/podkit)
//
// # Sandbox Layout
//
//	Pods/
//	  <Pod>/                 installed source tree of a pod
//	  Headers/Build/<Pod>/   build-time header symlinks
//	  Headers/Public/<Pod>/  export-time header symlinks
//	  Documentation/<Pod>/   generated docsets
package paths
