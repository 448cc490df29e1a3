package headers_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/podkit/pkg/errors"
	"github.com/arthur-debert/podkit/pkg/headers"
)

func TestMapHeaders(t *testing.T) {
	tests := []struct {
		name        string
		namespace   string
		headerDir   string
		mappingsDir string
		installRoot string
		headers     []string
		expected    headers.Mapping
	}{
		{
			name:      "flat_into_namespace",
			namespace: "Foo",
			headers:   []string{"Foo/include/Foo.h"},
			expected:  headers.Mapping{"Foo": {"Foo/include/Foo.h"}},
		},
		{
			name:        "mappings_dir_keeps_structure",
			namespace:   "Foo",
			mappingsDir: "Foo/include",
			headers:     []string{"Foo/include/sub/Foo.h"},
			expected:    headers.Mapping{"Foo/sub": {"Foo/include/sub/Foo.h"}},
		},
		{
			name:      "header_dir_nests_destination",
			namespace: "Foo",
			headerDir: "FooKit",
			headers:   []string{"/Pods/Foo/a.h", "/Pods/Foo/Deep/b.h"},
			expected:  headers.Mapping{"Foo/FooKit": {"/Pods/Foo/a.h", "/Pods/Foo/Deep/b.h"}},
		},
		{
			name:        "absolute_install_root",
			namespace:   "Foo",
			headerDir:   "FooKit",
			mappingsDir: "include",
			installRoot: "/Pods/Foo",
			headers: []string{
				"/Pods/Foo/include/a.h",
				"/Pods/Foo/include/net/b.h",
				"/Pods/Foo/include/net/c.h",
			},
			expected: headers.Mapping{
				"Foo/FooKit":     {"/Pods/Foo/include/a.h"},
				"Foo/FooKit/net": {"/Pods/Foo/include/net/b.h", "/Pods/Foo/include/net/c.h"},
			},
		},
		{
			name:        "outside_mappings_dir_collapses_to_root",
			namespace:   "Foo",
			mappingsDir: "include",
			installRoot: "/Pods/Foo",
			headers:     []string{"/Pods/Foo/src/x.h", "/Pods/Foo/include/y/z.h"},
			expected: headers.Mapping{
				"Foo":   {"/Pods/Foo/src/x.h"},
				"Foo/y": {"/Pods/Foo/include/y/z.h"},
			},
		},
		{
			name:        "relative_header_against_absolute_root_collapses",
			namespace:   "Foo",
			mappingsDir: "include",
			installRoot: "/Pods/Foo",
			headers:     []string{"include/a/x.h"},
			expected:    headers.Mapping{"Foo": {"include/a/x.h"}},
		},
		{
			name:      "no_headers",
			namespace: "Foo",
			expected:  headers.Mapping{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := headers.MapHeaders(tt.namespace, tt.headerDir, tt.mappingsDir, tt.installRoot, tt.headers)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMapHeaders_EmptyNamespace(t *testing.T) {
	_, err := headers.MapHeaders("", "", "", "", []string{"a.h"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHeaderMapping))
}

func TestMapping_Dirs(t *testing.T) {
	m := headers.Mapping{"b": {"1"}, "a": {"2", "3"}}
	assert.Equal(t, []string{"a", "b"}, m.Dirs())
	assert.Equal(t, 3, m.Len())
}

// Every generated header list must come back partitioned
func TestMapHeaders_Partition(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	segments := []string{"include", "sub", "net", "Foo", "x"}

	for round := 0; round < 30; round++ {
		t.Run(fmt.Sprintf("round_%d", round), func(t *testing.T) {
			var input []string
			for i := 0; i < 1+rng.Intn(10); i++ {
				h := "/Pods/Foo"
				for d := 0; d < rng.Intn(4); d++ {
					h += "/" + segments[rng.Intn(len(segments))]
				}
				input = append(input, fmt.Sprintf("%s/h%d.h", h, rng.Intn(5)))
			}
			mappingsDir := ""
			if rng.Intn(2) == 0 {
				mappingsDir = "include"
			}

			got, err := headers.MapHeaders("Foo", "", mappingsDir, "/Pods/Foo", input)
			require.NoError(t, err)

			seen := make(map[string]int)
			for dir, group := range got {
				assert.NotEmpty(t, group, "group %s is empty", dir)
				for _, h := range group {
					seen[h]++
				}
			}
			for _, h := range input {
				assert.Equal(t, 1, seen[h], "%s must appear in exactly one group", h)
			}
			assert.Len(t, seen, len(uniq(input)))
		})
	}
}

func uniq(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		out[s] = struct{}{}
	}
	return out
}
