package spec

import (
	"sort"

	"github.com/arthur-debert/podkit/pkg/errors"
)

// Platform is a deployment platform name
type Platform string

const (
	IOS     Platform = "ios"
	OSX     Platform = "osx"
	TVOS    Platform = "tvos"
	WatchOS Platform = "watchos"
)

// AllPlatforms lists every known platform in a stable order
var AllPlatforms = []Platform{IOS, OSX, TVOS, WatchOS}

func (p Platform) String() string { return string(p) }

// ParsePlatform validates a platform name
func ParsePlatform(name string) (Platform, error) {
	for _, p := range AllPlatforms {
		if string(p) == name {
			return p, nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown platform %q", name).
		WithDetail("platform", name)
}

// SortPlatforms sorts platforms by name, in place
func SortPlatforms(platforms []Platform) {
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })
}
