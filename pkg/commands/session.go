// Package commands implements the podkit commands on top of the
// installer. The cobra layer only parses flags and renders results.
package commands

import (
	"sort"

	"github.com/arthur-debert/podkit/pkg/config"
	"github.com/arthur-debert/podkit/pkg/docs"
	"github.com/arthur-debert/podkit/pkg/downloader"
	"github.com/arthur-debert/podkit/pkg/errors"
	"github.com/arthur-debert/podkit/pkg/filesystem"
	"github.com/arthur-debert/podkit/pkg/installer"
	"github.com/arthur-debert/podkit/pkg/logging"
	"github.com/arthur-debert/podkit/pkg/paths"
	"github.com/arthur-debert/podkit/pkg/sandbox"
	"github.com/arthur-debert/podkit/pkg/spec"
	"github.com/arthur-debert/podkit/pkg/types"
)

// SessionOptions describe one run over a manifest
type SessionOptions struct {
	// ManifestPath is the TOML manifest of resolved pods
	ManifestPath string

	// Config is the resolved configuration (required)
	Config *config.Config

	// Platforms restricts the install, every supported platform when empty
	Platforms []spec.Platform

	// Pods restricts the run to these pods, all pods when empty
	Pods []string

	// LocalPaths maps pod names to working copies
	LocalPaths map[string]string

	// Predownloaded pods are already present in the sandbox
	Predownloaded []string

	// HeadPods follow the tip of their source
	HeadPods []string

	// Collaborators, defaulting to the OS filesystem, git and docsets
	FileSystem types.FS
	Downloader downloader.Factory
	Docs       docs.Factory
	Reporter   installer.Reporter
}

// Session is a sandbox with one installer per selected pod
type Session struct {
	Paths      paths.Paths
	Sandbox    *sandbox.Sandbox
	Manifest   *spec.Manifest
	Installers []*installer.PodSourceInstaller
}

// NewSession loads the manifest and prepares the installers
func NewSession(opts SessionOptions) (*Session, error) {
	logger := logging.GetLogger("commands.session")

	if opts.Config == nil {
		return nil, errors.New(errors.ErrInvalidInput, "session requires a configuration")
	}
	cfg := opts.Config

	p, err := paths.New(cfg.Sandbox.Root)
	if err != nil {
		return nil, err
	}
	manifest, err := spec.LoadManifest(opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	if err := checkNames(manifest, opts.Pods); err != nil {
		return nil, err
	}
	localNames := make([]string, 0, len(opts.LocalPaths))
	for name := range opts.LocalPaths {
		localNames = append(localNames, name)
	}
	sort.Strings(localNames)
	if err := checkNames(manifest, localNames); err != nil {
		return nil, err
	}

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	newDownloader := opts.Downloader
	if newDownloader == nil {
		newDownloader = downloader.ForSource
	}
	newDocs := opts.Docs
	if newDocs == nil {
		newDocs = docs.NewFactory(fsys, docs.Options{
			Style:      cfg.Docs.Style,
			Width:      cfg.Docs.Width,
			InstallDir: cfg.Docs.InstallDir,
		})
	}

	sb := sandbox.New(p)
	for _, name := range opts.Predownloaded {
		sb.StorePredownloaded(name)
	}
	for _, name := range opts.HeadPods {
		sb.StoreHeadPod(name)
	}

	s := &Session{Paths: p, Sandbox: sb, Manifest: manifest}
	selected := make(map[string]bool, len(opts.Pods))
	for _, name := range opts.Pods {
		selected[name] = true
	}

	for _, pod := range manifest.Pods {
		if len(selected) > 0 && !selected[pod.Name] {
			continue
		}
		specs := spec.ForPlatforms(pod, opts.Platforms...)
		if len(specs) == 0 {
			logger.Warn().Str("pod", pod.Name).Msg("Pod supports none of the requested platforms, skipping")
			continue
		}

		i, err := installer.New(sb, specs, installer.Options{
			Clean:           cfg.Install.Clean,
			GenerateDocs:    cfg.Install.GenerateDocs,
			InstallDocs:     cfg.Install.InstallDocs,
			AggressiveCache: cfg.Cache.Aggressive,
			CacheRoot:       cfg.Cache.Root,
			MaxCacheSizeMB:  cfg.Cache.MaxSizeMB,
			LocalPath:       opts.LocalPaths[pod.Name],
		}, installer.Collaborators{
			Downloader: newDownloader,
			Docs:       newDocs,
			FS:         fsys,
			Reporter:   opts.Reporter,
		})
		if err != nil {
			return nil, err
		}
		s.Installers = append(s.Installers, i)
	}

	logger.Debug().
		Str("sandbox", p.SandboxRoot()).
		Int("pods", len(s.Installers)).
		Msg("Session ready")
	return s, nil
}

func checkNames(manifest *spec.Manifest, names []string) error {
	for _, name := range names {
		if _, ok := manifest.Pod(name); !ok {
			return errors.Newf(errors.ErrNotFound, "pod %s is not in %s", name, manifest.Path).
				WithDetail("pod", name)
		}
	}
	return nil
}
