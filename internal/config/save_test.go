package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFlag_UpdatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SetFlag(path, "duplicates-block-create", true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "duplicates-block-create: true")
	assert.Contains(t, text, "# Treat duplicate emails like invalid ones", "comments are preserved")
	assert.Contains(t, text, "# Rows of the demo table.")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.Flags["duplicates-block-create"])
	require.Equal(t, []string{"SynetecHQ", "Wavenest"}, cfg.Enrichment.Companies)
}

func TestSetFlag_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	require.NoError(t, SetFlag(path, "duplicates-block-create", true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "flags:\n  duplicates-block-create: true\n", string(data))
}

func TestSetFlag_AddsSectionAndKeepsOthers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	initial := `# my settings
auto_reload: false # keep it quiet
ui:
  show_help: false
`
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o600))

	require.NoError(t, SetFlag(path, "beta", true))
	require.NoError(t, SetFlag(path, "beta", false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# my settings")
	assert.Contains(t, text, "auto_reload: false # keep it quiet")
	assert.Contains(t, text, "show_help: false")
	assert.Contains(t, text, "beta: false")
	assert.NotContains(t, text, "beta: true")
}

func TestSetFlag_ReplacesNullSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("flags:\n"), 0o600))

	require.NoError(t, SetFlag(path, "x", true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.Flags["x"])
}

func TestSetFlag_RejectsNonMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- just\n- a list\n"), 0o600))

	err := SetFlag(path, "x", true)
	require.ErrorContains(t, err, "top level must be a mapping")
}
