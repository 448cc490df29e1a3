package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/podkit/pkg/filesystem"
	"github.com/arthur-debert/podkit/pkg/testutil"
)

const manifest = `
[[pod]]
name = "Foo"
version = "1.0.0"
source_files = ["Foo/*.{h,m}"]
public_header_files = ["Foo/*.h"]
source = { git = "https://example.com/Foo.git", tag = "1.0.0" }
`

// isolate keeps the command away from the user's configuration
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PODKIT_CONFIG_DIR", filepath.Join(dir, "config"))
	t.Setenv("PODKIT_CACHE_DIR", filepath.Join(dir, "cache"))
	t.Setenv("PODKIT_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("NO_COLOR", "1")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	isolate(t)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "podkit version dev")
	assert.Contains(t, out, "commit:")
}

func TestCleanPlanCmd_JSON(t *testing.T) {
	dir := isolate(t)
	fs := filesystem.NewOS()
	testutil.WriteFiles(t, fs, filepath.Join(dir, "Pods/Foo"), "Foo/Foo.h", "Foo/Foo.m", "notes.txt")

	out, err := run(t, "clean-plan", testutil.WriteManifest(t, dir, manifest),
		"--sandbox", filepath.Join(dir, "Pods"), "--format", "json")
	require.NoError(t, err)

	var plans []struct {
		Pod   string   `json:"pod"`
		Paths []string `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &plans))
	require.Len(t, plans, 1)
	assert.Equal(t, "Foo", plans[0].Pod)
	assert.Equal(t, []string{filepath.Join(dir, "Pods/Foo/notes.txt")}, plans[0].Paths)
}

func TestHeadersCmd_Text(t *testing.T) {
	dir := isolate(t)
	fs := filesystem.NewOS()
	testutil.WriteFiles(t, fs, filepath.Join(dir, "Pods/Foo"), "Foo/Foo.h", "Foo/Foo.m")

	out, err := run(t, "headers", testutil.WriteManifest(t, dir, manifest),
		"--sandbox", filepath.Join(dir, "Pods"), "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Foo")
	assert.Contains(t, out, "Foo.h")
}

func TestRootCmd_Errors(t *testing.T) {
	dir := isolate(t)
	path := testutil.WriteManifest(t, dir, manifest)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"clean-plan", path, "--format", "xml"}},
		{"unknown platform", []string{"headers", path, "--platform", "amiga"}},
		{"unknown pod", []string{"clean-plan", path, "--pod", "Nope"}},
		{"missing manifest", []string{"clean-plan"}},
		{"bad shell", []string{"completion", "tcsh"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCompletionCmd(t *testing.T) {
	isolate(t)

	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "podkit")
}
