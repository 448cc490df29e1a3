// Package fileaccessor resolves the file attributes of a specification
// against the files actually present in a pod root.
//
// A FileAccessor exists per (specification, platform) pair. A Set holds
// every accessor of one pod installation and UsedPaths collects the
// paths the installation needs, which drives cleanup.
package fileaccessor
