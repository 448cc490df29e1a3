// Package sandbox manages the shared on-disk workspace of an installation
// session: pod directories, per-pod install facts and the two header
// indexes (build and public) that generated build files point at.
//
// Layout:
//
//	<root>/
//	  <Pod>/                  downloaded pod sources
//	  Headers/Build/<Pod>/    symlinks to every header
//	  Headers/Public/<Pod>/   symlinks to public headers
//	  Documentation/<Pod>/    generated docsets
//
// Header indexes only ever grow. Mutation is serialized so pods sharing
// one sandbox can be linked from separate goroutines.
package sandbox
