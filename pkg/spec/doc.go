// Package spec models the already-resolved pod specifications podkit
// installs: a root specification, its subspecs, the platforms they
// support and the file attributes a Consumer resolves per platform.
//
// Specifications are read from TOML manifests; podkit never evaluates
// podspec DSL files.
package spec
