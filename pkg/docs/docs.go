// Package docs renders pod documentation into docsets.
package docs

import (
	"github.com/arthur-debert/podkit/pkg/types"
)

// Generator produces the documentation of one pod
type Generator interface {
	// AlreadyInstalled reports whether the docset is installed at this version
	AlreadyInstalled() bool

	// Generate renders the docset and, when install is set, copies it to
	// the docset install directory
	Generate(install bool) error
}

// Request describes the pod to document
type Request struct {
	Pod     string
	Version string

	// Readme is the absolute path of the pod readme, "" when absent
	Readme string

	// OutputDir is the sandbox documentation directory
	OutputDir string
}

// Options configure rendering and installation
type Options struct {
	Style      string
	Width      int
	InstallDir string
}

// Factory builds a Generator for a request
type Factory func(req Request) (Generator, error)

// NewFactory returns a Factory producing DocsetGenerators
func NewFactory(fsys types.FS, opts Options) Factory {
	return func(req Request) (Generator, error) {
		return NewDocsetGenerator(fsys, req, opts)
	}
}
