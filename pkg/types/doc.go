// Package types defines the interfaces shared across podkit packages,
// most importantly the FS abstraction every component performs its
// filesystem access through.
package types
