package spec

import (
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/podkit/pkg/errors"
)

// Manifest is a decoded pod manifest
type Manifest struct {
	Path string
	Pods []*Specification
}

// Pod finds a root specification by name
func (m *Manifest) Pod(name string) (*Specification, bool) {
	for _, pod := range m.Pods {
		if pod.Name == name {
			return pod, true
		}
	}
	return nil, false
}

type manifestFile struct {
	Pods []podEntry `koanf:"pod"`
}

type podEntry struct {
	FileAttributes `koanf:",squash"`

	Name      string                    `koanf:"name"`
	Version   string                    `koanf:"version"`
	Head      bool                      `koanf:"head"`
	Source    map[string]string         `koanf:"source"`
	License   licenseEntry              `koanf:"license"`
	Platforms []string                  `koanf:"platforms"`
	Overrides map[string]FileAttributes `koanf:"overrides"`
	Subspecs  []podEntry                `koanf:"subspec"`
}

type licenseEntry struct {
	Type string `koanf:"type"`
	File string `koanf:"file"`
}

// LoadManifest reads a TOML manifest of resolved pod specifications:
//
//	[[pod]]
//	name = "AFNetworking"
//	version = "2.0.0"
//	platforms = ["ios"]
//	source_files = ["AFNetworking/*.{h,m}"]
//	source = { git = "https://github.com/AFNetworking/AFNetworking.git", tag = "2.0.0" }
//
//	[pod.overrides.ios]
//	resources = ["Resources/*.png"]
//
//	[[pod.subspec]]
//	name = "Core"
func LoadManifest(path string) (*Manifest, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "manifest %s not found", path).
			WithDetail("path", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse manifest %s", path).
			WithDetail("path", path)
	}

	var raw manifestFile
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &raw,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &raw, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to decode manifest %s", path).
			WithDetail("path", path)
	}

	manifest := &Manifest{Path: path}
	for i := range raw.Pods {
		pod, err := raw.Pods[i].toSpecification(nil)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid pod #%d in %s", i+1, path).
				WithDetail("path", path)
		}
		manifest.Pods = append(manifest.Pods, pod)
	}
	return manifest, nil
}

func (e *podEntry) toSpecification(parent *Specification) (*Specification, error) {
	if e.Name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "pod entry has no name")
	}

	s := &Specification{
		Name:       e.Name,
		Attributes: e.FileAttributes,
	}
	if parent == nil {
		if e.Version == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "pod %s has no version", e.Name)
		}
		s.Version = Version{Raw: e.Version, Head: e.Head}
		s.Source = Source(e.Source)
		s.License = License{Type: e.License.Type, File: e.License.File}
	}

	for _, name := range e.Platforms {
		p, err := ParsePlatform(name)
		if err != nil {
			return nil, err
		}
		s.Platforms = append(s.Platforms, p)
	}

	if len(e.Overrides) > 0 {
		s.PlatformAttributes = make(map[Platform]FileAttributes, len(e.Overrides))
		for name, attrs := range e.Overrides {
			p, err := ParsePlatform(name)
			if err != nil {
				return nil, err
			}
			s.PlatformAttributes[p] = attrs
		}
	}

	if parent != nil {
		parent.AddSubspec(s)
	}
	for i := range e.Subspecs {
		if _, err := e.Subspecs[i].toSpecification(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}
