package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "typelayout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "arch: arm\nformat: json\nall: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{Arch: "arm", Format: "json", Color: "auto", All: true}, cfg)
}

func TestLoad_DefaultFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, runtime.GOARCH, cfg.Arch)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_DefaultFilePresent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("color: never\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "never", cfg.Color)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "explicit missing path")

	_, err = Load(writeFile(t, "format: xml\n"))
	assert.ErrorContains(t, err, "invalid format")

	_, err = Load(writeFile(t, "color: sometimes\n"))
	assert.ErrorContains(t, err, "invalid color")

	_, err = Load(writeFile(t, "arch: [amd64\n"))
	assert.ErrorContains(t, err, "parse config")
}
