package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/podkit/pkg/config"
)

// Config returns the default configuration with the sandbox, caches and
// docsets under dir
func Config(dir string) *config.Config {
	return &config.Config{
		Install: config.Install{Clean: true},
		Cache:   config.Cache{Root: filepath.Join(dir, "cache"), MaxSizeMB: 500},
		Sandbox: config.Sandbox{Root: filepath.Join(dir, "Pods")},
		Docs: config.Docs{
			Style:      "notty",
			Width:      80,
			InstallDir: filepath.Join(dir, "docsets"),
		},
	}
}

// WriteManifest writes a pod manifest into dir and returns its path
func WriteManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "pods.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
