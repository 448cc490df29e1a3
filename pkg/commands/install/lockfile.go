package install

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/podkit/pkg/errors"
)

// Lockfile records the pinned source of every pod that needed one
type Lockfile struct {
	Pods map[string]map[string]string `toml:"pods"`
}

// WriteLockfile writes sources as TOML, one table per pod
func WriteLockfile(path string, sources map[string]map[string]string) error {
	data, err := toml.Marshal(Lockfile{Pods: sources})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode lockfile")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write lockfile %s", path).
			WithDetail("path", path)
	}
	return nil
}

// ReadLockfile reads a lockfile written by WriteLockfile
func ReadLockfile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read lockfile %s", path).
			WithDetail("path", path)
	}
	var lock Lockfile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse lockfile %s", path).
			WithDetail("path", path)
	}
	return &lock, nil
}
