package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/podkit/pkg/errors"
)

// Environment variable names
const (
	// EnvSandboxRoot overrides the sandbox root
	EnvSandboxRoot = "PODKIT_SANDBOX_ROOT"

	// EnvPodkitDataDir overrides the XDG data directory for podkit
	EnvPodkitDataDir = "PODKIT_DATA_DIR"

	// EnvPodkitConfigDir overrides the XDG config directory for podkit
	EnvPodkitConfigDir = "PODKIT_CONFIG_DIR"

	// EnvPodkitCacheDir overrides the XDG cache directory for podkit
	EnvPodkitCacheDir = "PODKIT_CACHE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Sandbox layout. These names are part of the on-disk contract with the
// build files generated downstream and are not user-configurable.
const (
	// DefaultSandboxDir is the default sandbox directory name
	DefaultSandboxDir = "Pods"

	// PodkitDirName is the directory name for podkit-specific files
	PodkitDirName = "podkit"

	// HeadersDir holds the two header indexes
	HeadersDir = "Headers"

	// BuildHeadersDir is the build-time header index
	BuildHeadersDir = "Build"

	// PublicHeadersDir is the export-time header index
	PublicHeadersDir = "Public"

	// DocumentationDir holds generated docsets
	DocumentationDir = "Documentation"

	// DocsetsDir is the data subdirectory installed docsets are copied to
	DocsetsDir = "docsets"

	// GitCacheDir is the cache subdirectory for git clones
	GitCacheDir = "git"

	// LogFileName is the name of the log file
	LogFileName = "podkit.log"
)

// Paths provides centralized path management for podkit
type Paths interface {
	SandboxRoot() string
	PodDir(podName string) string
	HeadersBuildDir() string
	HeadersPublicDir() string
	DocumentationDir() string
	DataDir() string
	ConfigDir() string
	CacheDir() string
	GitCacheDir() string
	StateDir() string
	DocsetsDir() string
	LogFilePath() string
}

type paths struct {
	sandboxRoot string
	xdgData     string
	xdgConfig   string
	xdgCache    string
	xdgState    string
}

// New creates a new Paths instance with the given sandbox root.
// If sandboxRoot is empty, PODKIT_SANDBOX_ROOT is used, falling back to
// ./Pods in the current working directory.
func New(sandboxRoot string) (Paths, error) {
	p := &paths{}

	if sandboxRoot == "" {
		sandboxRoot = os.Getenv(EnvSandboxRoot)
	}
	if sandboxRoot == "" {
		sandboxRoot = DefaultSandboxDir
	}

	absRoot, err := filepath.Abs(ExpandHome(sandboxRoot))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for sandbox root")
	}
	p.sandboxRoot = absRoot

	p.setupXDGDirs()

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if dataDir := os.Getenv(EnvPodkitDataDir); dataDir != "" {
		p.xdgData = ExpandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, PodkitDirName)
	}

	if configDir := os.Getenv(EnvPodkitConfigDir); configDir != "" {
		p.xdgConfig = ExpandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, PodkitDirName)
	}

	if cacheDir := os.Getenv(EnvPodkitCacheDir); cacheDir != "" {
		p.xdgCache = ExpandHome(cacheDir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, PodkitDirName)
	}

	p.xdgState = filepath.Join(xdg.StateHome, PodkitDirName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

func (p *paths) SandboxRoot() string { return p.sandboxRoot }

// PodDir returns the directory a pod is installed into inside the sandbox
func (p *paths) PodDir(podName string) string {
	return filepath.Join(p.sandboxRoot, podName)
}

func (p *paths) HeadersBuildDir() string {
	return filepath.Join(p.sandboxRoot, HeadersDir, BuildHeadersDir)
}

func (p *paths) HeadersPublicDir() string {
	return filepath.Join(p.sandboxRoot, HeadersDir, PublicHeadersDir)
}

func (p *paths) DocumentationDir() string {
	return filepath.Join(p.sandboxRoot, DocumentationDir)
}

// DataDir returns the XDG data directory for podkit
func (p *paths) DataDir() string { return p.xdgData }

// ConfigDir returns the XDG config directory for podkit
func (p *paths) ConfigDir() string { return p.xdgConfig }

// CacheDir returns the XDG cache directory for podkit
func (p *paths) CacheDir() string { return p.xdgCache }

// GitCacheDir returns the directory holding cached git clones
func (p *paths) GitCacheDir() string {
	return filepath.Join(p.xdgCache, GitCacheDir)
}

// StateDir returns the XDG state directory for podkit
func (p *paths) StateDir() string { return p.xdgState }

// DocsetsDir returns where installed docsets live
func (p *paths) DocsetsDir() string {
	return filepath.Join(p.xdgData, DocsetsDir)
}

// LogFilePath returns the path to the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}
