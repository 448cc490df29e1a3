package fileaccessor

import (
	"sort"

	"github.com/arthur-debert/podkit/pkg/pathlist"
	"github.com/arthur-debert/podkit/pkg/spec"
)

// Set is every FileAccessor of one pod installation
type Set struct {
	accessors []*FileAccessor
}

// NewSet builds one accessor per (platform, specification), platforms in
// sorted order and specifications in map order. All accessors share the
// path list, so the pod root is listed once.
func NewSet(pathList *pathlist.PathList, specs spec.PlatformSpecMap) *Set {
	set := &Set{}
	for _, platform := range specs.Platforms() {
		for _, s := range specs[platform] {
			set.accessors = append(set.accessors, New(pathList, s.Consumer(platform)))
		}
	}
	return set
}

// Accessors returns the accessors in construction order
func (s *Set) Accessors() []*FileAccessor { return s.accessors }

// Len returns the number of accessors
func (s *Set) Len() int { return len(s.accessors) }

// UsedPaths collects every path the installation needs: source files,
// resources, preserve paths, prefix header, readme and license across all
// accessors. Empty entries are skipped.
func UsedPaths(set *Set) (map[string]struct{}, error) {
	used := make(map[string]struct{})
	add := func(paths ...string) {
		for _, p := range paths {
			if p != "" {
				used[p] = struct{}{}
			}
		}
	}

	for _, a := range set.accessors {
		sources, err := a.SourceFiles()
		if err != nil {
			return nil, err
		}
		resources, err := a.Resources()
		if err != nil {
			return nil, err
		}
		preserved, err := a.PreservePaths()
		if err != nil {
			return nil, err
		}
		prefix, err := a.PrefixHeader()
		if err != nil {
			return nil, err
		}
		readme, err := a.Readme()
		if err != nil {
			return nil, err
		}
		license, err := a.License()
		if err != nil {
			return nil, err
		}

		add(sources...)
		add(resources...)
		add(preserved...)
		add(prefix, readme, license)
	}
	return used, nil
}

// UsedPathList is UsedPaths as a sorted slice
func UsedPathList(set *Set) ([]string, error) {
	used, err := UsedPaths(set)
	if err != nil {
		return nil, err
	}
	list := make([]string, 0, len(used))
	for p := range used {
		list = append(list, p)
	}
	sort.Strings(list)
	return list, nil
}
