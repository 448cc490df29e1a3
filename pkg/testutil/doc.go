// Package testutil provides helpers for testing podkit components.
//
// Key components:
//   - NewTestFS: in-memory afero-backed types.FS
//   - FileTree / WriteTree: declarative pod source trees
//   - SpecBuilder: fluent construction of spec.Specification values
//
// All test data should be defined inline, not in external files.
package testutil
