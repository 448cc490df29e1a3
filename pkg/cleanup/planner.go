package cleanup

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/podkit/pkg/errors"
	"github.com/arthur-debert/podkit/pkg/filesystem"
	"github.com/arthur-debert/podkit/pkg/logging"
	"github.com/arthur-debert/podkit/pkg/types"
)

// PlanCleanup returns every path below root that is unrelated to all used
// paths, sorted. Hidden entries are considered. A missing root yields an
// empty plan.
func PlanCleanup(fsys types.FS, root string, used map[string]struct{}) ([]string, error) {
	logger := logging.GetLogger("cleanup")

	exists, err := filesystem.Exists(fsys, root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", root).
			WithDetail("path", root)
	}
	if !exists {
		logger.Debug().Str("root", root).Msg("Root missing, nothing to clean")
		return nil, nil
	}

	usedList := make([]string, 0, len(used))
	for u := range used {
		if u != "" {
			usedList = append(usedList, u)
		}
	}

	var plan []string
	err = filesystem.Walk(fsys, root, func(path string, entry fs.DirEntry) error {
		if isDotEntry(path) {
			return nil
		}
		if !related(path, usedList) {
			plan = append(plan, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to enumerate %s", root).
			WithDetail("path", root)
	}

	sort.Strings(plan)
	logger.Debug().
		Str("root", root).
		Int("used", len(usedList)).
		Int("planned", len(plan)).
		Msg("Cleanup planned")
	return plan, nil
}

// related reports whether candidate and some used path contain one another
func related(candidate string, used []string) bool {
	for _, u := range used {
		if strings.Contains(u, candidate) || strings.Contains(candidate, u) {
			return true
		}
	}
	return false
}

func isDotEntry(path string) bool {
	base := filepath.Base(path)
	return base == "." || base == ".."
}
