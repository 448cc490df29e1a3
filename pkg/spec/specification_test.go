package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPod() *Specification {
	root := &Specification{
		Name:    "AFNetworking",
		Version: Version{Raw: "2.0.0"},
		Source:  Source{"git": "https://example.com/af.git", "tag": "2.0.0"},
		Attributes: FileAttributes{
			SourceFiles:      []string{"AFNetworking/*.{h,m}"},
			PrefixHeaderFile: "AFNetworking/Prefix.pch",
			HeaderDir:        "AF",
		},
		Platforms: []Platform{IOS, OSX},
		PlatformAttributes: map[Platform]FileAttributes{
			IOS: {Resources: []string{"Resources/ios/*.png"}},
		},
	}
	root.AddSubspec(&Specification{
		Name: "UIKit",
		Attributes: FileAttributes{
			SourceFiles: []string{"UIKit+AFNetworking/*.{h,m}"},
			HeaderDir:   "UIKit",
		},
		Platforms: []Platform{IOS},
	})
	root.AddSubspec(&Specification{
		Name:       "Serialization",
		Attributes: FileAttributes{SourceFiles: []string{"Serialization/*.m"}},
	})
	return root
}

func TestSpecificationTree(t *testing.T) {
	root := newPod()
	uikit := root.Subspecs[0]

	assert.True(t, root.IsRoot())
	assert.False(t, uikit.IsRoot())
	assert.Same(t, root, uikit.Root())
	assert.Same(t, root, uikit.Parent())
	assert.Equal(t, "AFNetworking/UIKit", uikit.FullName())
	assert.Len(t, root.Walk(), 3)
}

func TestSupportedPlatforms(t *testing.T) {
	root := newPod()

	assert.Equal(t, []Platform{IOS}, root.Subspecs[0].SupportedPlatforms())
	assert.Equal(t, []Platform{IOS, OSX}, root.Subspecs[1].SupportedPlatforms(), "inherited from root")
	assert.False(t, root.Subspecs[0].SupportsPlatform(OSX))
	assert.Equal(t, AllPlatforms, (&Specification{Name: "Bare"}).SupportedPlatforms())
}

func TestConsumer(t *testing.T) {
	root := newPod()
	uikit := root.Subspecs[0]

	t.Run("platform_override_appends_lists", func(t *testing.T) {
		c := root.Consumer(IOS)
		assert.Equal(t, []string{"Resources/ios/*.png"}, c.Resources)
		assert.Empty(t, root.Consumer(OSX).Resources)
	})

	t.Run("subspec_inherits_and_overrides", func(t *testing.T) {
		c := uikit.Consumer(IOS)
		assert.Equal(t, []string{"AFNetworking/*.{h,m}", "UIKit+AFNetworking/*.{h,m}"}, c.SourceFiles)
		assert.Equal(t, "UIKit", c.HeaderDir, "closest scalar wins")
		assert.Equal(t, "AFNetworking/Prefix.pch", c.PrefixHeaderFile, "scalar inherited")
		assert.Same(t, uikit, c.Spec)
		assert.Equal(t, IOS, c.Platform)
	})

	t.Run("does_not_mutate_attributes", func(t *testing.T) {
		_ = uikit.Consumer(IOS)
		assert.Equal(t, []string{"AFNetworking/*.{h,m}"}, root.Attributes.SourceFiles)
	})
}

func TestForPlatforms(t *testing.T) {
	root := newPod()

	m := ForPlatforms(root)
	require.Equal(t, []Platform{IOS, OSX}, m.Platforms())
	assert.Len(t, m[IOS], 3)
	assert.Len(t, m[OSX], 2)
	assert.Same(t, root, m.RootSpec())
	assert.Len(t, m.Specs(), 3, "specs are unique across platforms")

	only := ForPlatforms(root, OSX)
	assert.Equal(t, []Platform{OSX}, only.Platforms())

	assert.Nil(t, PlatformSpecMap{}.RootSpec())
}

func TestVersionAndSource(t *testing.T) {
	assert.Equal(t, "1.0", Version{Raw: "1.0"}.String())
	assert.Equal(t, "HEAD based on 1.0", Version{Raw: "1.0", Head: true}.String())

	assert.Equal(t, "git", Source{"git": "u", "tag": "1"}.Kind())
	assert.Equal(t, "http", Source{"http": "u"}.Kind())
	assert.Equal(t, "", Source{"tag": "1"}.Kind())
}

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform("ios")
	require.NoError(t, err)
	assert.Equal(t, IOS, p)

	_, err = ParsePlatform("android")
	assert.Error(t, err)
}
