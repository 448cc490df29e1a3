// Package installer installs the source tree of one pod into the sandbox.
//
// An install runs four steps in a fixed order:
//
//	fetch   download the source unless it was predownloaded or is local
//	docs    render documentation when enabled
//	clean   remove the files no specification uses, never for local pods
//	link    register the pod headers in the sandbox header indexes
//
// Each step moves the installer State forward. A step whose state is
// behind the current one is rejected, so documentation can never read a
// tree that was already cleaned.
package installer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/podkit/pkg/cleanup"
	"github.com/arthur-debert/podkit/pkg/docs"
	"github.com/arthur-debert/podkit/pkg/downloader"
	"github.com/arthur-debert/podkit/pkg/errors"
	"github.com/arthur-debert/podkit/pkg/fileaccessor"
	"github.com/arthur-debert/podkit/pkg/headers"
	"github.com/arthur-debert/podkit/pkg/logging"
	"github.com/arthur-debert/podkit/pkg/pathlist"
	"github.com/arthur-debert/podkit/pkg/sandbox"
	"github.com/arthur-debert/podkit/pkg/spec"
	"github.com/arthur-debert/podkit/pkg/types"
)

// Sandbox is the part of the shared sandbox an installer uses
type Sandbox interface {
	Root() string
	PodDir(name string) string
	DocumentationDir() string
	BuildHeaders() sandbox.HeaderIndex
	PublicHeaders() sandbox.HeaderIndex

	IsLocal(name string) bool
	IsPredownloaded(name string) bool
	IsHeadPod(name string) bool
	StoreLocalPath(name, path string)
	StoreCheckoutSource(name string, source map[string]string)
}

// PodSourceInstaller installs one pod for every platform it is used on
type PodSourceInstaller struct {
	sandbox Sandbox
	specs   spec.PlatformSpecMap
	root    *spec.Specification
	opts    Options

	fs            types.FS
	newDownloader downloader.Factory
	newDocs       docs.Factory
	reporter      Reporter
	logger        zerolog.Logger

	state          State
	specificSource downloader.SpecificSource
	removed        []string
	buildLinks     []string
	publicLinks    []string

	// pathList and accessors describe the tree on disk; both are reset
	// when a download replaces it
	pathList  *pathlist.PathList
	accessors *fileaccessor.Set
}

// New creates an installer for the pod described by specs
func New(sb Sandbox, specs spec.PlatformSpecMap, opts Options, deps Collaborators) (*PodSourceInstaller, error) {
	if sb == nil {
		return nil, errors.New(errors.ErrInvalidInput, "installer requires a sandbox")
	}
	root := specs.RootSpec()
	if root == nil {
		return nil, errors.New(errors.ErrInvalidInput, "installer requires at least one specification")
	}
	if deps.FS == nil {
		return nil, errors.New(errors.ErrInvalidInput, "installer requires a filesystem")
	}
	if deps.Downloader == nil {
		return nil, errors.Newf(errors.ErrInvalidInput, "no downloader configured for %s", root.Name)
	}
	if opts.GenerateDocs && deps.Docs == nil {
		return nil, errors.Newf(errors.ErrInvalidInput, "documentation enabled but no generator configured for %s", root.Name)
	}

	reporter := deps.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}

	i := &PodSourceInstaller{
		sandbox:       sb,
		specs:         specs,
		root:          root,
		opts:          opts,
		fs:            deps.FS,
		newDownloader: deps.Downloader,
		newDocs:       deps.Docs,
		reporter:      reporter,
		logger:        logging.WithPod("installer", root.Name),
	}

	if opts.LocalPath != "" {
		local, err := filepath.Abs(opts.LocalPath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve local path %s", opts.LocalPath)
		}
		sb.StoreLocalPath(root.Name, local)
	}
	return i, nil
}

func (i *PodSourceInstaller) Name() string { return i.root.Name }

// Root is the directory the pod is installed in
func (i *PodSourceInstaller) Root() string { return i.sandbox.PodDir(i.root.Name) }

func (i *PodSourceInstaller) State() State { return i.state }

// SpecificSource is the pinned source recorded by the last download, nil
// when the requested source was already pinned or nothing was downloaded
func (i *PodSourceInstaller) SpecificSource() downloader.SpecificSource { return i.specificSource }

func (i *PodSourceInstaller) IsLocal() bool { return i.sandbox.IsLocal(i.root.Name) }

// IsPredownloaded is true when resolution already fetched the pod
func (i *PodSourceInstaller) IsPredownloaded() bool {
	return i.sandbox.IsPredownloaded(i.root.Name)
}

// IsHeadPod is true when the pod follows the tip of its source
func (i *PodSourceInstaller) IsHeadPod() bool {
	return i.root.Version.Head || i.sandbox.IsHeadPod(i.root.Name)
}

// Install runs every enabled step in order
func (i *PodSourceInstaller) Install(ctx context.Context) (*Result, error) {
	done := logging.LogOperationStart(i.logger, "install")
	defer done()

	result := &Result{
		Pod:     i.Name(),
		Version: i.root.Version.String(),
		Root:    i.Root(),
	}
	local := i.IsLocal()

	i.reporter.Section(fmt.Sprintf("Installing %s %s", i.Name(), i.root.Version))

	if !i.IsPredownloaded() && !local {
		if err := i.DownloadSource(ctx); err != nil {
			return result, err
		}
		result.Steps = append(result.Steps, Fetched)
	}

	if i.opts.GenerateDocs && !local {
		if err := i.GenerateDocs(); err != nil {
			return result, err
		}
		result.Steps = append(result.Steps, Documented)
	}

	if i.opts.Clean && !local {
		err := i.CleanInstallation()
		result.Removed = append(result.Removed, i.removed...)
		if err != nil {
			return result, err
		}
		result.Steps = append(result.Steps, Cleaned)
	}

	if err := i.LinkHeaders(); err != nil {
		return result, err
	}
	result.Steps = append(result.Steps, Linked)

	result.SpecificSource = i.specificSource
	result.BuildHeaders = append(result.BuildHeaders, i.buildLinks...)
	result.PublicHeaders = append(result.PublicHeaders, i.publicLinks...)

	i.logger.Info().
		Stringer("state", i.state).
		Int("removed", len(result.Removed)).
		Msg("Installed pod")
	return result, nil
}

// DownloadSource fetches the pod into Root and records the pinned source
// when the requested one was not specific
func (i *PodSourceInstaller) DownloadSource(ctx context.Context) error {
	if err := i.guard(Fetched); err != nil {
		return err
	}
	done := logging.LogOperationStart(i.logger, "download")
	defer done()

	dl, err := i.newDownloader(i.Root(), i.root.Source, downloader.Options{
		CacheRoot:       i.opts.CacheRoot,
		MaxCacheSizeMB:  i.opts.MaxCacheSizeMB,
		AggressiveCache: i.opts.AggressiveCache,
	})
	if err != nil {
		return err
	}

	// the tree is replaced, so anything read from it is stale
	i.pathList = nil
	i.accessors = nil

	if i.IsHeadPod() {
		i.reporter.Message(fmt.Sprintf("> Downloading the head of %s", i.Name()))
		if err := dl.DownloadHead(ctx); err != nil {
			return err
		}
		i.specificSource = dl.CheckoutOptions()
		if i.specificSource == nil {
			i.specificSource = downloader.SpecificSource{}
		}
	} else {
		if err := dl.Download(ctx); err != nil {
			return err
		}
		if !dl.OptionsSpecific() {
			i.specificSource = dl.CheckoutOptions()
		}
	}

	if i.specificSource != nil {
		i.sandbox.StoreCheckoutSource(i.Name(), i.specificSource)
	}
	i.advance(Fetched)
	return nil
}

// GenerateDocs renders the documentation unless the same version is
// already installed
func (i *PodSourceInstaller) GenerateDocs() error {
	if err := i.guard(Documented); err != nil {
		return err
	}
	if i.newDocs == nil {
		return errors.Newf(errors.ErrDocsFailed, "no documentation generator configured for %s", i.Name())
	}

	set, err := i.FileAccessors()
	if err != nil {
		return err
	}
	readme := ""
	if set.Len() > 0 {
		if readme, err = set.Accessors()[0].Readme(); err != nil {
			return err
		}
	}

	gen, err := i.newDocs(docs.Request{
		Pod:       i.Name(),
		Version:   i.root.Version.String(),
		Readme:    readme,
		OutputDir: i.sandbox.DocumentationDir(),
	})
	if err != nil {
		return err
	}

	if gen.AlreadyInstalled() {
		i.reporter.Message("> Using existing documentation")
	} else {
		i.reporter.Message("> Installing documentation")
		if err := gen.Generate(i.opts.InstallDocs); err != nil {
			return err
		}
	}
	i.advance(Documented)
	return nil
}

// CleanInstallation removes every path CleanPaths plans. Local pods are
// left untouched. A partial cleanup still counts as cleaned.
func (i *PodSourceInstaller) CleanInstallation() error {
	if i.IsLocal() {
		i.logger.Warn().Str("root", i.Root()).Msg("Refusing to clean a local pod")
		return nil
	}
	if err := i.guard(Cleaned); err != nil {
		return err
	}
	done := logging.LogOperationStart(i.logger, "clean")
	defer done()

	i.reporter.Message("> Cleaning")
	plan, err := i.CleanPaths()
	if err != nil {
		return err
	}

	removed, err := cleanup.NewExecutor(i.fs).Execute(plan)
	i.removed = append(i.removed, removed...)
	if err != nil {
		if len(removed) > 0 {
			i.advance(Cleaned)
		}
		return err
	}
	i.advance(Cleaned)
	return nil
}

// CleanPaths plans the cleanup without removing anything
func (i *PodSourceInstaller) CleanPaths() ([]string, error) {
	set, err := i.FileAccessors()
	if err != nil {
		return nil, err
	}
	used, err := fileaccessor.UsedPaths(set)
	if err != nil {
		return nil, err
	}
	return cleanup.PlanCleanup(i.fs, i.Root(), used)
}

// UsedFiles lists every path a specification uses, sorted
func (i *PodSourceInstaller) UsedFiles() ([]string, error) {
	set, err := i.FileAccessors()
	if err != nil {
		return nil, err
	}
	return fileaccessor.UsedPathList(set)
}

// LinkHeaders registers the headers of every accessor in the build index
// and the public headers in the public index
func (i *PodSourceInstaller) LinkHeaders() error {
	if err := i.guard(Linked); err != nil {
		return err
	}
	done := logging.LogOperationStart(i.logger, "link")
	defer done()

	set, err := i.FileAccessors()
	if err != nil {
		return err
	}
	build := i.sandbox.BuildHeaders()
	public := i.sandbox.PublicHeaders()

	for _, accessor := range set.Accessors() {
		namespace := accessor.Spec().Root().Name
		build.AddSearchPath(namespace)
		public.AddSearchPath(namespace)

		all, err := accessor.Headers()
		if err != nil {
			return err
		}
		links, err := i.link(build, accessor, all)
		if err != nil {
			return err
		}
		i.buildLinks = append(i.buildLinks, links...)

		exported, err := accessor.PublicHeaders()
		if err != nil {
			return err
		}
		links, err = i.link(public, accessor, exported)
		if err != nil {
			return err
		}
		i.publicLinks = append(i.publicLinks, links...)
	}

	i.advance(Linked)
	return nil
}

func (i *PodSourceInstaller) link(index sandbox.HeaderIndex, accessor *fileaccessor.FileAccessor, files []string) ([]string, error) {
	mapping, err := i.HeaderMappings(accessor, files)
	if err != nil {
		return nil, err
	}

	var links []string
	for _, dir := range mapping.Dirs() {
		added, err := index.AddFiles(dir, i.withoutFrameworks(dir, mapping[dir]))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrLinkFailed, "failed to link headers of %s", i.Name()).
				WithDetail("dir", dir)
		}
		links = append(links, added...)
	}
	return links, nil
}

// HeaderMappings groups files by the directory they are linked into
func (i *PodSourceInstaller) HeaderMappings(accessor *fileaccessor.FileAccessor, files []string) (headers.Mapping, error) {
	consumer := accessor.Consumer()
	return headers.MapHeaders(
		accessor.Spec().Root().Name,
		consumer.HeaderDir,
		consumer.HeaderMappingsDir,
		accessor.Root(),
		files,
	)
}

// FileAccessors returns the accessors of every (platform, specification)
// pair, built on first use and after each download
func (i *PodSourceInstaller) FileAccessors() (*fileaccessor.Set, error) {
	if i.accessors != nil {
		return i.accessors, nil
	}
	if i.pathList == nil {
		i.pathList = pathlist.New(i.fs, i.Root())
	}
	if err := i.pathList.Read(); err != nil {
		return nil, err
	}
	i.accessors = fileaccessor.NewSet(i.pathList, i.specs)
	return i.accessors, nil
}

// withoutFrameworks drops headers shipped inside vendored frameworks.
// They stay in the mapping and the used paths, only the link is skipped.
func (i *PodSourceInstaller) withoutFrameworks(dir string, files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		if strings.Contains(filepath.ToSlash(f), ".framework/") {
			i.logger.Debug().
				Str("header", f).
				Str("dir", dir).
				Msg("Skipping framework header")
			continue
		}
		out = append(out, f)
	}
	return out
}
