package sandbox_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/podkit/pkg/paths"
	"github.com/arthur-debert/podkit/pkg/sandbox"
)

func newSandbox(t *testing.T) (*sandbox.Sandbox, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "Pods")
	p, err := paths.New(root)
	require.NoError(t, err)
	return sandbox.New(p), root
}

func TestSandbox_Registry(t *testing.T) {
	sb, root := newSandbox(t)

	assert.Equal(t, root, sb.Root())
	assert.Equal(t, filepath.Join(root, "Foo"), sb.PodDir("Foo"))
	assert.Equal(t, filepath.Join(root, "Documentation"), sb.DocumentationDir())
	assert.Equal(t, filepath.Join(root, "Headers", "Build"), sb.BuildHeaders().Root())
	assert.Equal(t, filepath.Join(root, "Headers", "Public"), sb.PublicHeaders().Root())

	assert.False(t, sb.IsLocal("Foo"))
	sb.StoreLocalPath("Foo", "/work/Foo")
	assert.True(t, sb.IsLocal("Foo"))
	assert.Equal(t, "/work/Foo", sb.PodDir("Foo"))

	assert.False(t, sb.IsPredownloaded("Bar"))
	sb.StorePredownloaded("Bar")
	assert.True(t, sb.IsPredownloaded("Bar"))

	assert.False(t, sb.IsHeadPod("Baz"))
	sb.StoreHeadPod("Baz")
	assert.True(t, sb.IsHeadPod("Baz"))
}

func TestSandbox_CheckoutSourcesAreCopied(t *testing.T) {
	sb, _ := newSandbox(t)

	src := map[string]string{"git": "u", "commit": "abc"}
	sb.StoreCheckoutSource("Foo", src)
	src["commit"] = "changed"

	got := sb.CheckoutSources()
	assert.Equal(t, "abc", got["Foo"]["commit"])
	got["Foo"]["commit"] = "mutated"
	assert.Equal(t, "abc", sb.CheckoutSources()["Foo"]["commit"])
	assert.Equal(t, []string{"Foo"}, sb.Pods())
}

func TestHeadersStore_AddFiles(t *testing.T) {
	tmp := t.TempDir()
	podRoot := filepath.Join(tmp, "Pods", "Foo")
	require.NoError(t, os.MkdirAll(filepath.Join(podRoot, "Classes"), 0755))
	header := filepath.Join(podRoot, "Classes", "Foo.h")
	require.NoError(t, os.WriteFile(header, []byte("// Foo"), 0644))

	store := sandbox.NewHeadersStore(filepath.Join(tmp, "Pods", "Headers", "Build"))
	store.AddSearchPath("Foo")
	store.AddSearchPath("Foo")

	links, err := store.AddFiles("Foo/Sub", []string{header})
	require.NoError(t, err)
	expected := filepath.Join(store.Root(), "Foo", "Sub", "Foo.h")
	assert.Equal(t, []string{expected}, links)

	content, err := os.ReadFile(expected)
	require.NoError(t, err)
	assert.Equal(t, "// Foo", string(content))

	target, err := os.Readlink(expected)
	require.NoError(t, err)
	assert.Equal(t, header, target)

	// Re-linking replaces the existing link
	_, err = store.AddFiles("Foo/Sub", []string{header})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(store.Root(), "Foo")}, store.SearchPaths())
	assert.Len(t, store.Links(), 2)
}

func TestHeadersStore_NoFiles(t *testing.T) {
	store := sandbox.NewHeadersStore(filepath.Join(t.TempDir(), "Headers"))
	links, err := store.AddFiles("Foo", nil)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestHeadersStore_ConcurrentAdds(t *testing.T) {
	tmp := t.TempDir()
	store := sandbox.NewHeadersStore(filepath.Join(tmp, "Headers"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('A' + i))
			header := filepath.Join(tmp, name+".h")
			if err := os.WriteFile(header, nil, 0644); err != nil {
				t.Error(err)
				return
			}
			store.AddSearchPath(name)
			if _, err := store.AddFiles(name, []string{header}); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.SearchPaths(), 8)
	assert.Len(t, store.Links(), 8)
}
