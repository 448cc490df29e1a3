// Package downloader fetches pod sources into the sandbox.
//
// Only git sources are supported. Every repository is mirrored once into
// a bare cache under <cache root>/git and pod directories are cloned from
// that mirror, so repeat installs of the same pod do not hit the network
// when aggressive caching is on.
package downloader

import (
	"context"

	"github.com/arthur-debert/podkit/pkg/errors"
	"github.com/arthur-debert/podkit/pkg/spec"
)

// SpecificSource is a pinned checkout description, e.g. {git, commit}
type SpecificSource map[string]string

// Downloader fetches one pod source into its target directory
type Downloader interface {
	// Download fetches the revision the source asks for
	Download(ctx context.Context) error

	// DownloadHead fetches the tip of the source branch
	DownloadHead(ctx context.Context) error

	// CheckoutOptions describes what was checked out. Nil before a download.
	CheckoutOptions() SpecificSource

	// OptionsSpecific reports whether the source already pins a revision
	OptionsSpecific() bool
}

// Options configure the download cache
type Options struct {
	CacheRoot       string
	MaxCacheSizeMB  int
	AggressiveCache bool
}

// Factory builds a downloader for a source and target directory
type Factory func(target string, src spec.Source, opts Options) (Downloader, error)

// ForSource is the default Factory
func ForSource(target string, src spec.Source, opts Options) (Downloader, error) {
	switch src.Kind() {
	case "git":
		return NewGitDownloader(target, src, opts)
	case "":
		return nil, errors.New(errors.ErrSourceInvalid, "source has no recognised location")
	default:
		return nil, errors.Newf(errors.ErrSourceInvalid, "unsupported source kind %q", src.Kind()).
			WithDetail("kind", src.Kind())
	}
}
