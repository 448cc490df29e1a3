// Package headermap reports where the headers of each pod are linked.
package headermap

import (
	"github.com/arthur-debert/podkit/pkg/commands"
	"github.com/arthur-debert/podkit/pkg/headers"
	"github.com/arthur-debert/podkit/pkg/output"
)

// MapPods returns the build and public header mappings of every
// selected pod, merged across platforms and subspecs
func MapPods(opts commands.SessionOptions) ([]*output.HeaderReport, error) {
	session, err := commands.NewSession(opts)
	if err != nil {
		return nil, err
	}

	reports := make([]*output.HeaderReport, 0, len(session.Installers))
	for _, i := range session.Installers {
		set, err := i.FileAccessors()
		if err != nil {
			return nil, err
		}

		report := &output.HeaderReport{
			Pod:    i.Name(),
			Build:  headers.Mapping{},
			Public: headers.Mapping{},
		}
		for _, accessor := range set.Accessors() {
			all, err := accessor.Headers()
			if err != nil {
				return nil, err
			}
			build, err := i.HeaderMappings(accessor, all)
			if err != nil {
				return nil, err
			}
			merge(report.Build, build)

			exported, err := accessor.PublicHeaders()
			if err != nil {
				return nil, err
			}
			public, err := i.HeaderMappings(accessor, exported)
			if err != nil {
				return nil, err
			}
			merge(report.Public, public)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// merge adds the headers of src missing from dst
func merge(dst, src headers.Mapping) {
	for dir, files := range src {
		seen := make(map[string]bool, len(dst[dir]))
		for _, f := range dst[dir] {
			seen[f] = true
		}
		for _, f := range files {
			if !seen[f] {
				dst[dir] = append(dst[dir], f)
				seen[f] = true
			}
		}
	}
}
