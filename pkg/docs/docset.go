package docs

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/podkit/pkg/errors"
	"github.com/arthur-debert/podkit/pkg/filesystem"
	"github.com/arthur-debert/podkit/pkg/logging"
	"github.com/arthur-debert/podkit/pkg/types"
)

// DocsetGenerator renders the pod readme into a Dash-style docset
type DocsetGenerator struct {
	fs     types.FS
	req    Request
	opts   Options
	logger zerolog.Logger
}

// NewDocsetGenerator validates req and creates a generator
func NewDocsetGenerator(fsys types.FS, req Request, opts Options) (*DocsetGenerator, error) {
	if req.Pod == "" {
		return nil, errors.New(errors.ErrInvalidInput, "documentation request has no pod name")
	}
	if req.OutputDir == "" {
		return nil, errors.Newf(errors.ErrInvalidInput, "no documentation directory for %s", req.Pod)
	}
	return &DocsetGenerator{
		fs:     fsys,
		req:    req,
		opts:   opts,
		logger: logging.WithPod("docs", req.Pod),
	}, nil
}

// DocsetPath is where the docset is generated inside the sandbox
func (g *DocsetGenerator) DocsetPath() string {
	return filepath.Join(g.req.OutputDir, g.req.Pod, g.docsetName())
}

// InstalledPath is where the docset is installed, "" without install dir
func (g *DocsetGenerator) InstalledPath() string {
	if g.opts.InstallDir == "" {
		return ""
	}
	return filepath.Join(g.opts.InstallDir, g.docsetName())
}

func (g *DocsetGenerator) docsetName() string { return g.req.Pod + ".docset" }

func (g *DocsetGenerator) AlreadyInstalled() bool {
	installed := g.InstalledPath()
	if installed == "" {
		return false
	}
	data, err := g.fs.ReadFile(filepath.Join(installed, "Contents", "Info.plist"))
	if err != nil {
		return false
	}
	return plistValue(data, "CFBundleVersion") == g.req.Version
}

func (g *DocsetGenerator) Generate(install bool) error {
	contents := filepath.Join(g.DocsetPath(), "Contents")
	documents := filepath.Join(contents, "Resources", "Documents")

	source, err := g.readme()
	if err != nil {
		return err
	}
	rendered, err := g.render(source)
	if err != nil {
		return err
	}
	plist, err := infoPlist(g.req.Pod, g.req.Version)
	if err != nil {
		return errors.Wrap(err, errors.ErrDocsFailed, "failed to render Info.plist")
	}

	files := map[string][]byte{
		filepath.Join(documents, "index.txt"): []byte(rendered),
		filepath.Join(documents, "index.md"):  source,
		filepath.Join(contents, "Info.plist"): plist,
	}
	for path, data := range files {
		if err := g.write(path, data); err != nil {
			return err
		}
	}
	g.logger.Info().Str("docset", g.DocsetPath()).Msg("Generated documentation")

	if install {
		return g.install()
	}
	return nil
}

func (g *DocsetGenerator) readme() ([]byte, error) {
	if g.req.Readme == "" {
		return []byte(fmt.Sprintf("# %s %s\n\nNo readme was provided.\n", g.req.Pod, g.req.Version)), nil
	}
	data, err := g.fs.ReadFile(g.req.Readme)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDocsFailed, "failed to read %s", g.req.Readme).
			WithDetail("path", g.req.Readme)
	}
	return data, nil
}

func (g *DocsetGenerator) render(markdown []byte) (string, error) {
	var options []glamour.TermRendererOption
	if g.opts.Style != "" && g.opts.Style != "auto" {
		options = append(options, glamour.WithStylePath(g.opts.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if g.opts.Width > 0 {
		options = append(options, glamour.WithWordWrap(g.opts.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrDocsFailed, "failed to create markdown renderer")
	}
	rendered, err := renderer.Render(string(markdown))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrDocsFailed, "failed to render readme")
	}
	return rendered, nil
}

func (g *DocsetGenerator) write(path string, data []byte) error {
	if err := g.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := g.fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail("path", path)
	}
	return nil
}

// install replaces the installed docset with the generated one
func (g *DocsetGenerator) install() error {
	dest := g.InstalledPath()
	if dest == "" {
		return errors.Newf(errors.ErrDocsFailed, "no docset install directory configured for %s", g.req.Pod)
	}
	if err := g.fs.RemoveAll(dest); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", dest)
	}

	src := g.DocsetPath()
	err := filesystem.Walk(g.fs, src, func(path string, entry fs.DirEntry) error {
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		data, err := g.fs.ReadFile(path)
		if err != nil {
			return err
		}
		return g.write(filepath.Join(dest, rel), data)
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrDocsFailed, "failed to install docset into %s", dest)
	}

	g.logger.Info().Str("path", dest).Msg("Installed documentation")
	return nil
}
