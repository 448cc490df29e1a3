// Package headers computes where the headers of a pod are linked inside
// the sandbox header indexes.
package headers

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/podkit/pkg/errors"
	"github.com/arthur-debert/podkit/pkg/logging"
)

// Mapping groups header paths by destination directory. Every header is
// in exactly one group and no group is empty.
type Mapping map[string][]string

// Dirs returns the destination directories, sorted
func (m Mapping) Dirs() []string {
	dirs := make([]string, 0, len(m))
	for dir := range m {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// Len returns the number of headers across all groups
func (m Mapping) Len() int {
	n := 0
	for _, headers := range m {
		n += len(headers)
	}
	return n
}

// MapHeaders assigns each header a destination directory below
// namespaceDir. A non-empty headerDir nests the destination root. A
// non-empty mappingsDir, relative to installRoot, keeps the folder
// structure of headers found below it; headers outside it collapse to
// the destination root.
func MapHeaders(namespaceDir, headerDir, mappingsDir, installRoot string, headers []string) (Mapping, error) {
	logger := logging.GetLogger("headers")

	if namespaceDir == "" {
		return nil, errors.New(errors.ErrHeaderMapping, "namespace directory must not be empty")
	}

	base := namespaceDir
	if headerDir != "" {
		base = filepath.Join(base, headerDir)
	}

	var mappingsRoot string
	if mappingsDir != "" {
		mappingsRoot = filepath.Join(installRoot, mappingsDir)
	}

	mapping := make(Mapping)
	seen := make(map[string]struct{}, len(headers))
	for _, header := range headers {
		if header == "" {
			continue
		}
		if _, dup := seen[header]; dup {
			continue
		}
		seen[header] = struct{}{}

		dir := base
		if mappingsRoot != "" {
			rel, err := filepath.Rel(mappingsRoot, header)
			switch {
			case err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)):
				logger.Warn().
					Str("header", header).
					Str("mappingsDir", mappingsRoot).
					Msg("Header is outside the header mappings dir, linking at the namespace root")
			default:
				if sub := filepath.Dir(rel); sub != "." {
					dir = filepath.Join(base, sub)
				}
			}
		}
		mapping[dir] = append(mapping[dir], header)
	}

	logger.Trace().
		Str("namespace", namespaceDir).
		Int("headers", mapping.Len()).
		Int("dirs", len(mapping)).
		Msg("Mapped headers")
	return mapping, nil
}
