package sandbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/podkit/pkg/errors"
	"github.com/arthur-debert/podkit/pkg/logging"
)

// HeaderIndex is an append-only header search path registry
type HeaderIndex interface {
	// Root is the directory the index lives in
	Root() string

	// AddSearchPath registers a namespace directory, relative to Root
	AddSearchPath(path string)

	// SearchPaths returns the absolute registered search paths, sorted
	SearchPaths() []string

	// AddFiles links files into <Root>/<namespace>/ and returns the links
	AddFiles(namespace string, files []string) ([]string, error)
}

// HeadersStore is a HeaderIndex backed by a symlink farm on disk
type HeadersStore struct {
	root   string
	fs     filesystem.FullFileSystem
	logger zerolog.Logger

	mu          sync.Mutex
	searchPaths map[string]struct{}
	links       []string
}

// NewHeadersStore creates a store rooted at root on the OS filesystem
func NewHeadersStore(root string) *HeadersStore {
	osfs := filesystem.NewOSFileSystem("/")
	return NewHeadersStoreWithFS(root, synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths())
}

// NewHeadersStoreWithFS creates a store using fsys for every mutation
func NewHeadersStoreWithFS(root string, fsys filesystem.FullFileSystem) *HeadersStore {
	return &HeadersStore{
		root:        root,
		fs:          fsys,
		logger:      logging.GetLogger("sandbox.headers").With().Str("root", root).Logger(),
		searchPaths: make(map[string]struct{}),
	}
}

func (h *HeadersStore) Root() string { return h.root }

func (h *HeadersStore) AddSearchPath(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.searchPaths[path] = struct{}{}
}

func (h *HeadersStore) SearchPaths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	paths := make([]string, 0, len(h.searchPaths))
	for p := range h.searchPaths {
		paths = append(paths, filepath.Join(h.root, p))
	}
	sort.Strings(paths)
	return paths
}

// Links returns every link created so far, in creation order
func (h *HeadersStore) Links() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.links...)
}

// AddFiles links each file as <root>/<namespace>/<basename>. Existing
// links are replaced. Link targets are the absolute header paths.
func (h *HeadersStore) AddFiles(namespace string, files []string) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	dir := filepath.Join(h.root, namespace)
	sfs := synthfs.New()
	ops := make([]synthfs.Operation, 0, len(files))
	links := make([]string, 0, len(files))

	for i, file := range files {
		link := filepath.Join(dir, filepath.Base(file))
		target := file
		if abs, err := filepath.Abs(file); err == nil {
			target = abs
		}

		id := fmt.Sprintf("header_link_%s_%d", namespace, i)
		ops = append(ops, sfs.CustomOperationWithID(id, func(ctx context.Context, fs filesystem.FileSystem) error {
			if err := fs.MkdirAll(dir, 0755); err != nil {
				return err
			}
			if err := fs.Remove(link); err != nil && !os.IsNotExist(err) {
				return err
			}
			return fs.Symlink(target, link)
		}))
		links = append(links, link)
	}

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	if _, err := synthfs.RunWithOptions(context.Background(), h.fs, options, ops...); err != nil {
		h.logger.Error().Err(err).Str("namespace", namespace).Msg("Failed to link headers")
		return nil, errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link headers into %s", dir).
			WithDetail("namespace", namespace)
	}

	h.links = append(h.links, links...)
	h.logger.Debug().
		Str("namespace", namespace).
		Int("count", len(links)).
		Msg("Linked headers")
	return links, nil
}
