package fileaccessor

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/podkit/pkg/pathlist"
	"github.com/arthur-debert/podkit/pkg/spec"
)

// HeaderExtensions are the file extensions treated as headers
var HeaderExtensions = []string{".h", ".hh", ".hpp", ".ipp", ".tpp", ".hxx", ".def"}

var (
	readmePatterns  = []string{"readme*"}
	licensePatterns = []string{"licen{c,s}e*"}
)

// FileAccessor answers file queries for one specification on one platform
type FileAccessor struct {
	pathList *pathlist.PathList
	consumer *spec.Consumer

	mu      sync.Mutex
	loaded  bool
	loadErr error

	sourceFiles   []string
	headers       []string
	publicHeaders []string
	resources     []string
	preservePaths []string
	prefixHeader  string
	readme        string
	license       string
}

// New creates an accessor. Nothing is globbed until the first query.
func New(pathList *pathlist.PathList, consumer *spec.Consumer) *FileAccessor {
	return &FileAccessor{pathList: pathList, consumer: consumer}
}

func (a *FileAccessor) Spec() *spec.Specification { return a.consumer.Spec }
func (a *FileAccessor) Platform() spec.Platform   { return a.consumer.Platform }
func (a *FileAccessor) Consumer() *spec.Consumer  { return a.consumer }
func (a *FileAccessor) Root() string              { return a.pathList.Root() }

// SourceFiles returns the source files, directories expanded
func (a *FileAccessor) SourceFiles() ([]string, error) {
	if err := a.load(); err != nil {
		return nil, err
	}
	return a.sourceFiles, nil
}

// Headers returns the source files with a header extension
func (a *FileAccessor) Headers() ([]string, error) {
	if err := a.load(); err != nil {
		return nil, err
	}
	return a.headers, nil
}

// PublicHeaders returns the declared public headers, or every header
// when none are declared
func (a *FileAccessor) PublicHeaders() ([]string, error) {
	if err := a.load(); err != nil {
		return nil, err
	}
	return a.publicHeaders, nil
}

func (a *FileAccessor) Resources() ([]string, error) {
	if err := a.load(); err != nil {
		return nil, err
	}
	return a.resources, nil
}

func (a *FileAccessor) PreservePaths() ([]string, error) {
	if err := a.load(); err != nil {
		return nil, err
	}
	return a.preservePaths, nil
}

// PrefixHeader returns the absolute prefix header path, "" when unset
func (a *FileAccessor) PrefixHeader() (string, error) {
	if err := a.load(); err != nil {
		return "", err
	}
	return a.prefixHeader, nil
}

// Readme returns the first readme at the pod root, "" when absent
func (a *FileAccessor) Readme() (string, error) {
	if err := a.load(); err != nil {
		return "", err
	}
	return a.readme, nil
}

// License returns the declared license file, else the first license-like
// file at the pod root, "" when neither exists
func (a *FileAccessor) License() (string, error) {
	if err := a.load(); err != nil {
		return "", err
	}
	return a.license, nil
}

func (a *FileAccessor) load() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loaded {
		return a.loadErr
	}
	a.loadErr = a.resolve()
	a.loaded = true
	return a.loadErr
}

func (a *FileAccessor) resolve() error {
	c := a.consumer
	var err error

	a.sourceFiles, err = a.pathList.Glob(c.SourceFiles, pathlist.GlobOptions{
		Excludes:   c.ExcludeFiles,
		ExpandDirs: true,
	})
	if err != nil {
		return err
	}
	a.headers = filterHeaders(a.sourceFiles)

	a.publicHeaders = a.headers
	if len(c.PublicHeaderFiles) > 0 {
		declared, err := a.pathList.Glob(c.PublicHeaderFiles, pathlist.GlobOptions{
			Excludes:   c.ExcludeFiles,
			ExpandDirs: true,
		})
		if err != nil {
			return err
		}
		a.publicHeaders = intersect(declared, a.headers)
	}

	if a.resources, err = a.pathList.Glob(c.Resources, pathlist.GlobOptions{}); err != nil {
		return err
	}
	if a.preservePaths, err = a.pathList.Glob(c.PreservePaths, pathlist.GlobOptions{}); err != nil {
		return err
	}

	if c.PrefixHeaderFile != "" {
		a.prefixHeader = filepath.Join(a.pathList.Root(), filepath.FromSlash(c.PrefixHeaderFile))
	}

	if a.readme, err = a.first(readmePatterns); err != nil {
		return err
	}

	if file := c.Spec.Root().License.File; file != "" {
		a.license = filepath.Join(a.pathList.Root(), filepath.FromSlash(file))
	} else if a.license, err = a.first(licensePatterns); err != nil {
		return err
	}
	return nil
}

// first returns the first match of patterns at the pod root
func (a *FileAccessor) first(patterns []string) (string, error) {
	matches, err := a.pathList.Glob(patterns, pathlist.GlobOptions{})
	if err != nil || len(matches) == 0 {
		return "", err
	}
	return matches[0], nil
}

// IsHeader reports whether path has a header extension
func IsHeader(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, h := range HeaderExtensions {
		if ext == h {
			return true
		}
	}
	return false
}

func filterHeaders(files []string) []string {
	var headers []string
	for _, f := range files {
		if IsHeader(f) {
			headers = append(headers, f)
		}
	}
	return headers
}

// intersect keeps the elements of a present in b, in a's order
func intersect(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, s := range b {
		in[s] = struct{}{}
	}
	var out []string
	for _, s := range a {
		if _, ok := in[s]; ok {
			out = append(out, s)
		}
	}
	return out
}
