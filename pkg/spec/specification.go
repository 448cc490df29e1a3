package spec

import (
	"fmt"
	"strings"
)

// Version is a pod version. Head versions track the tip of the source
// rather than the released revision.
type Version struct {
	Raw  string
	Head bool
}

func (v Version) String() string {
	if v.Head {
		return "HEAD based on " + v.Raw
	}
	return v.Raw
}

// Source describes where a pod comes from, e.g. {"git": url, "tag": "1.0"}
type Source map[string]string

var sourceKinds = []string{"git", "http", "svn", "hg", "path"}

// Kind returns the first recognised transport key, or "" if none
func (s Source) Kind() string {
	for _, kind := range sourceKinds {
		if _, ok := s[kind]; ok {
			return kind
		}
	}
	return ""
}

// License is the declared license of a pod
type License struct {
	Type string
	File string
}

// FileAttributes are the file-related attributes of a specification
type FileAttributes struct {
	SourceFiles       []string `koanf:"source_files"`
	Resources         []string `koanf:"resources"`
	PreservePaths     []string `koanf:"preserve_paths"`
	PublicHeaderFiles []string `koanf:"public_header_files"`
	ExcludeFiles      []string `koanf:"exclude_files"`
	PrefixHeaderFile  string   `koanf:"prefix_header_file"`
	HeaderDir         string   `koanf:"header_dir"`
	HeaderMappingsDir string   `koanf:"header_mappings_dir"`
}

// Specification is a root pod specification or one of its subspecs
type Specification struct {
	Name    string
	Version Version
	Source  Source
	License License

	Attributes FileAttributes

	// Platforms lists supported platforms. Empty means the parent's
	// platforms, or every platform for a root.
	Platforms []Platform

	// PlatformAttributes are merged over Attributes for one platform
	PlatformAttributes map[Platform]FileAttributes

	Subspecs []*Specification

	parent *Specification
}

// AddSubspec attaches sub as a child of s and returns it
func (s *Specification) AddSubspec(sub *Specification) *Specification {
	sub.parent = s
	s.Subspecs = append(s.Subspecs, sub)
	return sub
}

// Parent returns the parent specification, nil for a root
func (s *Specification) Parent() *Specification { return s.parent }

// IsRoot reports whether s has no parent
func (s *Specification) IsRoot() bool { return s.parent == nil }

// Root walks up to the root specification
func (s *Specification) Root() *Specification {
	root := s
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// FullName is the slash-joined name from the root, e.g. "AFNetworking/Core"
func (s *Specification) FullName() string {
	if s.parent == nil {
		return s.Name
	}
	return s.parent.FullName() + "/" + s.Name
}

// SupportedPlatforms resolves the effective platform list
func (s *Specification) SupportedPlatforms() []Platform {
	for spec := s; spec != nil; spec = spec.parent {
		if len(spec.Platforms) > 0 {
			return spec.Platforms
		}
	}
	return AllPlatforms
}

// SupportsPlatform reports whether s can be installed for p
func (s *Specification) SupportsPlatform(p Platform) bool {
	for _, supported := range s.SupportedPlatforms() {
		if supported == p {
			return true
		}
	}
	return false
}

// Walk returns s followed by every subspec, depth first
func (s *Specification) Walk() []*Specification {
	all := []*Specification{s}
	for _, sub := range s.Subspecs {
		all = append(all, sub.Walk()...)
	}
	return all
}

func (s *Specification) String() string {
	return fmt.Sprintf("%s (%s)", s.FullName(), s.Root().Version)
}

// Consumer is a specification viewed for one platform, with attributes
// inherited from its ancestors and platform overrides applied.
type Consumer struct {
	FileAttributes

	Spec     *Specification
	Platform Platform
}

// Consumer resolves the attributes of s for platform p. List attributes
// concatenate from the root down; scalar attributes are inherited unless
// a closer specification or a platform override sets them.
func (s *Specification) Consumer(p Platform) *Consumer {
	var chain []*Specification
	for spec := s; spec != nil; spec = spec.parent {
		chain = append([]*Specification{spec}, chain...)
	}

	c := &Consumer{Spec: s, Platform: p}
	for _, spec := range chain {
		c.merge(spec.Attributes)
		if override, ok := spec.PlatformAttributes[p]; ok {
			c.merge(override)
		}
	}
	return c
}

func (c *Consumer) merge(attrs FileAttributes) {
	c.SourceFiles = append(c.SourceFiles, attrs.SourceFiles...)
	c.Resources = append(c.Resources, attrs.Resources...)
	c.PreservePaths = append(c.PreservePaths, attrs.PreservePaths...)
	c.PublicHeaderFiles = append(c.PublicHeaderFiles, attrs.PublicHeaderFiles...)
	c.ExcludeFiles = append(c.ExcludeFiles, attrs.ExcludeFiles...)
	c.PrefixHeaderFile = pick(attrs.PrefixHeaderFile, c.PrefixHeaderFile)
	c.HeaderDir = pick(attrs.HeaderDir, c.HeaderDir)
	c.HeaderMappingsDir = pick(attrs.HeaderMappingsDir, c.HeaderMappingsDir)
}

func pick(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// PlatformSpecMap groups the specifications being installed per platform
type PlatformSpecMap map[Platform][]*Specification

// ForPlatforms builds the map for root and every subspec supporting each
// platform. With no platforms given, the root's supported platforms are used.
func ForPlatforms(root *Specification, platforms ...Platform) PlatformSpecMap {
	if len(platforms) == 0 {
		platforms = root.SupportedPlatforms()
	}
	m := make(PlatformSpecMap)
	for _, p := range platforms {
		for _, spec := range root.Walk() {
			if spec.SupportsPlatform(p) {
				m[p] = append(m[p], spec)
			}
		}
	}
	return m
}

// Platforms returns the platforms in the map, sorted
func (m PlatformSpecMap) Platforms() []Platform {
	platforms := make([]Platform, 0, len(m))
	for p := range m {
		platforms = append(platforms, p)
	}
	SortPlatforms(platforms)
	return platforms
}

// RootSpec returns the root of the first specification, nil when empty
func (m PlatformSpecMap) RootSpec() *Specification {
	for _, p := range m.Platforms() {
		if specs := m[p]; len(specs) > 0 {
			return specs[0].Root()
		}
	}
	return nil
}

// Specs returns every distinct specification, in platform order
func (m PlatformSpecMap) Specs() []*Specification {
	seen := make(map[*Specification]bool)
	var specs []*Specification
	for _, p := range m.Platforms() {
		for _, s := range m[p] {
			if !seen[s] {
				seen[s] = true
				specs = append(specs, s)
			}
		}
	}
	return specs
}
