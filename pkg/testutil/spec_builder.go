package testutil

import (
	"github.com/arthur-debert/podkit/pkg/spec"
)

// SpecBuilder builds specifications for tests
type SpecBuilder struct {
	spec *spec.Specification
}

// NewSpec starts a root specification with a git source
func NewSpec(name, version string) *SpecBuilder {
	return &SpecBuilder{spec: &spec.Specification{
		Name:    name,
		Version: spec.Version{Raw: version},
		Source:  spec.Source{"git": "https://example.com/" + name + ".git", "tag": version},
	}}
}

// NewSubspec starts a subspec; attach it with Subspec
func NewSubspec(name string) *SpecBuilder {
	return &SpecBuilder{spec: &spec.Specification{Name: name}}
}

// Head marks the version as a head version
func (b *SpecBuilder) Head() *SpecBuilder {
	b.spec.Version.Head = true
	return b
}

// Source replaces the source
func (b *SpecBuilder) Source(src spec.Source) *SpecBuilder {
	b.spec.Source = src
	return b
}

// SourceFiles appends source file globs
func (b *SpecBuilder) SourceFiles(globs ...string) *SpecBuilder {
	b.spec.Attributes.SourceFiles = append(b.spec.Attributes.SourceFiles, globs...)
	return b
}

// PublicHeaders appends public header globs
func (b *SpecBuilder) PublicHeaders(globs ...string) *SpecBuilder {
	b.spec.Attributes.PublicHeaderFiles = append(b.spec.Attributes.PublicHeaderFiles, globs...)
	return b
}

// Resources appends resource globs
func (b *SpecBuilder) Resources(globs ...string) *SpecBuilder {
	b.spec.Attributes.Resources = append(b.spec.Attributes.Resources, globs...)
	return b
}

// PreservePaths appends preserve path globs
func (b *SpecBuilder) PreservePaths(globs ...string) *SpecBuilder {
	b.spec.Attributes.PreservePaths = append(b.spec.Attributes.PreservePaths, globs...)
	return b
}

// Exclude appends exclude globs
func (b *SpecBuilder) Exclude(globs ...string) *SpecBuilder {
	b.spec.Attributes.ExcludeFiles = append(b.spec.Attributes.ExcludeFiles, globs...)
	return b
}

// PrefixHeader sets the prefix header file
func (b *SpecBuilder) PrefixHeader(path string) *SpecBuilder {
	b.spec.Attributes.PrefixHeaderFile = path
	return b
}

// HeaderDir sets the header dir override
func (b *SpecBuilder) HeaderDir(dir string) *SpecBuilder {
	b.spec.Attributes.HeaderDir = dir
	return b
}

// HeaderMappingsDir sets the header mappings dir
func (b *SpecBuilder) HeaderMappingsDir(dir string) *SpecBuilder {
	b.spec.Attributes.HeaderMappingsDir = dir
	return b
}

// License sets the declared license file
func (b *SpecBuilder) License(file string) *SpecBuilder {
	b.spec.License.File = file
	return b
}

// Platforms restricts the supported platforms
func (b *SpecBuilder) Platforms(platforms ...spec.Platform) *SpecBuilder {
	b.spec.Platforms = platforms
	return b
}

// Subspec attaches a built subspec
func (b *SpecBuilder) Subspec(sub *SpecBuilder) *SpecBuilder {
	b.spec.AddSubspec(sub.spec)
	return b
}

// Build returns the specification
func (b *SpecBuilder) Build() *spec.Specification {
	return b.spec
}

// SpecMap builds a PlatformSpecMap for the given platforms (iOS when none)
func (b *SpecBuilder) SpecMap(platforms ...spec.Platform) spec.PlatformSpecMap {
	if len(platforms) == 0 {
		platforms = []spec.Platform{spec.IOS}
	}
	return spec.ForPlatforms(b.spec, platforms...)
}
