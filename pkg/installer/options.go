package installer

import (
	"github.com/arthur-debert/podkit/pkg/docs"
	"github.com/arthur-debert/podkit/pkg/downloader"
	"github.com/arthur-debert/podkit/pkg/types"
)

// Options toggle the optional install steps
type Options struct {
	// Clean removes the files no specification uses
	Clean bool

	// GenerateDocs renders the pod documentation
	GenerateDocs bool

	// InstallDocs also installs the rendered docset
	InstallDocs bool

	AggressiveCache bool
	CacheRoot       string
	MaxCacheSizeMB  int

	// LocalPath installs the pod from a working copy the user owns
	LocalPath string
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Clean:          true,
		MaxCacheSizeMB: 500,
	}
}

// Reporter receives the user facing progress of an install
type Reporter interface {
	Section(title string)
	Message(msg string)
}

type nopReporter struct{}

func (nopReporter) Section(string) {}
func (nopReporter) Message(string) {}

// Collaborators are the backends an installer drives
type Collaborators struct {
	Downloader downloader.Factory
	Docs       docs.Factory
	FS         types.FS

	// Reporter is optional
	Reporter Reporter
}

// Result summarises one install
type Result struct {
	Pod            string                    `json:"pod" yaml:"pod"`
	Version        string                    `json:"version" yaml:"version"`
	Root           string                    `json:"root" yaml:"root"`
	SpecificSource downloader.SpecificSource `json:"specific_source,omitempty" yaml:"specific_source,omitempty"`
	Removed        []string                  `json:"removed,omitempty" yaml:"removed,omitempty"`
	BuildHeaders   []string                  `json:"build_headers,omitempty" yaml:"build_headers,omitempty"`
	PublicHeaders  []string                  `json:"public_headers,omitempty" yaml:"public_headers,omitempty"`
	Steps          []State                   `json:"steps" yaml:"steps"`
}
