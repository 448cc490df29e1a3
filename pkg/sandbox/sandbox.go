package sandbox

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/podkit/pkg/logging"
	"github.com/arthur-debert/podkit/pkg/paths"
)

// Sandbox is the registry shared by every pod installed in one session
type Sandbox struct {
	paths  paths.Paths
	build  HeaderIndex
	public HeaderIndex
	logger zerolog.Logger

	mu            sync.Mutex
	predownloaded map[string]bool
	head          map[string]bool
	local         map[string]string
	checkout      map[string]map[string]string
}

// New creates a sandbox with on-disk header indexes
func New(p paths.Paths) *Sandbox {
	return NewWithIndexes(p, NewHeadersStore(p.HeadersBuildDir()), NewHeadersStore(p.HeadersPublicDir()))
}

// NewWithIndexes creates a sandbox around existing header indexes
func NewWithIndexes(p paths.Paths, build, public HeaderIndex) *Sandbox {
	return &Sandbox{
		paths:         p,
		build:         build,
		public:        public,
		logger:        logging.GetLogger("sandbox"),
		predownloaded: make(map[string]bool),
		head:          make(map[string]bool),
		local:         make(map[string]string),
		checkout:      make(map[string]map[string]string),
	}
}

// Root returns the sandbox directory
func (s *Sandbox) Root() string { return s.paths.SandboxRoot() }

// BuildHeaders is the build-time header index
func (s *Sandbox) BuildHeaders() HeaderIndex { return s.build }

// PublicHeaders is the export-time header index
func (s *Sandbox) PublicHeaders() HeaderIndex { return s.public }

// DocumentationDir is where docsets are generated
func (s *Sandbox) DocumentationDir() string { return s.paths.DocumentationDir() }

// PodDir returns the directory holding the sources of pod. A local
// override path wins over the sandbox directory.
func (s *Sandbox) PodDir(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.local[name]; ok {
		return p
	}
	return s.paths.PodDir(name)
}

// StoreLocalPath registers a user-owned directory as the pod source
func (s *Sandbox) StoreLocalPath(name, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.local[name] = path
	s.logger.Debug().Str("pod", name).Str("path", path).Msg("Stored local path")
}

// IsLocal reports whether pod has a local override
func (s *Sandbox) IsLocal(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.local[name]
	return ok
}

// StorePredownloaded records that resolution already fetched pod
func (s *Sandbox) StorePredownloaded(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predownloaded[name] = true
}

func (s *Sandbox) IsPredownloaded(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.predownloaded[name]
}

// StoreHeadPod records that pod tracks its source head
func (s *Sandbox) StoreHeadPod(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.head[name] = true
}

func (s *Sandbox) IsHeadPod(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.head[name]
}

// StoreCheckoutSource records the pinned source of pod
func (s *Sandbox) StoreCheckoutSource(name string, source map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make(map[string]string, len(source))
	for k, v := range source {
		copied[k] = v
	}
	s.checkout[name] = copied
}

// CheckoutSources returns a copy of every recorded checkout source
func (s *Sandbox) CheckoutSources() map[string]map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]map[string]string, len(s.checkout))
	for name, src := range s.checkout {
		copied := make(map[string]string, len(src))
		for k, v := range src {
			copied[k] = v
		}
		out[name] = copied
	}
	return out
}

// Pods returns the names of pods with a recorded checkout source, sorted
func (s *Sandbox) Pods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.checkout))
	for name := range s.checkout {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
