package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSource_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "sub", "config.yaml")

	require.NoError(t, SaveSource(configPath, SourceConfig{Path: "groups.json"}))

	cfg := loadConfigFromYAML(t, readFile(t, configPath))
	require.Equal(t, "groups.json", cfg.Source.Path)
	// Omitted keys fall back to defaults.
	require.Equal(t, "groups", cfg.Source.Table)
}

func TestSaveSource_PreservesOtherSections(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	require.NoError(t, SaveSource(configPath, SourceConfig{Path: "teams.db", Format: "sqlite", Table: "teams"}))

	content := readFile(t, configPath)
	assert.Contains(t, content, "# Pulsar Configuration")
	assert.Contains(t, content, "# pulsar watch settings")
	assert.Contains(t, content, "path: teams.db")

	cfg := loadConfigFromYAML(t, content)
	require.Equal(t, SourceConfig{Path: "teams.db", Format: "sqlite", Table: "teams"}, cfg.Source)
	require.Equal(t, Defaults().Watch, cfg.Watch)
	require.Equal(t, Defaults().Cache, cfg.Cache)
}

func TestSaveSource_AppendsMissingSection(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("output:\n  format: json\n"), 0o600))

	require.NoError(t, SaveSource(configPath, SourceConfig{Path: "g.yaml"}))

	cfg := loadConfigFromYAML(t, readFile(t, configPath))
	require.Equal(t, OutputJSON, cfg.Output.Format)
	require.Equal(t, "g.yaml", cfg.Source.Path)
}

func TestSaveSource_AtomicWrite(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	require.NoError(t, SaveSource(configPath, SourceConfig{Path: "a.json"}))
	require.NoError(t, SaveSource(configPath, SourceConfig{Path: "b.json"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasPrefix(entry.Name(), ".pulsar.yaml.tmp"), "temp file left behind: %s", entry.Name())
	}
	assert.Contains(t, readFile(t, configPath), "path: b.json")
}

func TestSaveSource_RejectsNonMapping(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("- a\n- b\n"), 0o600))

	require.Error(t, SaveSource(configPath, SourceConfig{Path: "x.json"}))
}

func TestSaveSource_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("source: [unclosed\n"), 0o600))

	err := SaveSource(configPath, SourceConfig{Path: "x.json"})
	require.ErrorContains(t, err, "parsing config")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
