package cleanup

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/podkit/pkg/errors"
	"github.com/arthur-debert/podkit/pkg/logging"
	"github.com/arthur-debert/podkit/pkg/types"
)

// Executor removes planned paths
type Executor struct {
	fs     types.FS
	logger zerolog.Logger

	// DryRun logs the removals without performing them
	DryRun bool
}

// NewExecutor creates an executor working on fsys
func NewExecutor(fsys types.FS) *Executor {
	return &Executor{
		fs:     fsys,
		logger: logging.GetLogger("cleanup.executor"),
	}
}

// Execute removes every path in order and returns the removed ones. It
// stops at the first failure. Paths that are already gone count as
// removed, so re-running an interrupted cleanup is safe.
func (e *Executor) Execute(paths []string) ([]string, error) {
	removed := make([]string, 0, len(paths))

	for _, path := range paths {
		if e.DryRun {
			e.logger.Info().Str("path", path).Msg("Would remove")
			removed = append(removed, path)
			continue
		}

		if err := e.fs.RemoveAll(path); err != nil {
			e.logger.Error().Err(err).Str("path", path).Msg("Failed to remove path")
			return removed, errors.Wrapf(err, errors.ErrCleanupFailed, "failed to remove %s", path).
				WithDetail("path", path).
				WithDetail("removed", len(removed))
		}
		e.logger.Trace().Str("path", path).Msg("Removed")
		removed = append(removed, path)
	}

	e.logger.Debug().
		Int("removed", len(removed)).
		Bool("dryRun", e.DryRun).
		Msg("Cleanup executed")
	return removed, nil
}
