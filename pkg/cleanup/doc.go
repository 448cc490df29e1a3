// Package cleanup decides which files of a downloaded pod are not needed
// and removes them.
//
// Planning and execution are separate steps. PlanCleanup only reads the
// filesystem; Executor performs the deletions. A path is kept when it and
// any used path contain one another as raw substrings, so a used file
// protects every ancestor directory and a used directory protects its
// contents. Unrelated siblings can be kept too: a used "Foo.h" keeps
// "Foo.h.orig".
package cleanup
