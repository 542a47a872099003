package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/pulsar/internal/tracing"
)

// loadConfigFromYAML is a helper to load config from YAML string.
func loadConfigFromYAML(t *testing.T, content string) Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	cfg := Defaults()
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.Equal(t, "groups", cfg.Source.Table)
	require.Empty(t, cfg.Source.Path)
	require.Equal(t, OutputTree, cfg.Output.Format)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	require.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	require.False(t, cfg.Hierarchy.IncludeUnknown)
	require.False(t, cfg.Tracing.Enabled)
	require.NoError(t, Validate(cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "explicit format", mutate: func(c *Config) { c.Source.Format = "yml" }},
		{name: "json output", mutate: func(c *Config) { c.Output.Format = OutputJSON }},
		{name: "empty output", mutate: func(c *Config) { c.Output.Format = "" }},
		{name: "zero ttl", mutate: func(c *Config) { c.Cache.TTL = 0 }},
		{name: "unknown format", mutate: func(c *Config) { c.Source.Format = "csv" }, wantErr: "source.format"},
		{name: "unknown output", mutate: func(c *Config) { c.Output.Format = "html" }, wantErr: "output.format"},
		{name: "negative ttl", mutate: func(c *Config) { c.Cache.TTL = -time.Second }, wantErr: "cache.ttl"},
		{name: "negative debounce", mutate: func(c *Config) { c.Watch.Debounce = -time.Second }, wantErr: "watch.debounce"},
		{name: "bad sample rate", mutate: func(c *Config) { c.Tracing.SampleRate = 1.5 }, wantErr: "sample_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     tracing.Config
		wantErr bool
	}{
		{name: "disabled defaults", cfg: tracing.DefaultConfig()},
		{name: "empty exporter", cfg: tracing.Config{SampleRate: 0.5}},
		{name: "otlp with endpoint", cfg: tracing.Config{Enabled: true, Exporter: "otlp", OTLPEndpoint: "collector:4317", SampleRate: 1}},
		{name: "disabled otlp without endpoint", cfg: tracing.Config{Exporter: "otlp"}},
		{name: "enabled otlp without endpoint", cfg: tracing.Config{Enabled: true, Exporter: "otlp"}, wantErr: true},
		{name: "unknown exporter", cfg: tracing.Config{Exporter: "jaeger"}, wantErr: true},
		{name: "negative sample rate", cfg: tracing.Config{SampleRate: -0.1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &parsed))
	require.Contains(t, parsed, "source")
	require.Contains(t, parsed, "cache")

	cfg := loadConfigFromYAML(t, DefaultConfigTemplate())
	require.Equal(t, Defaults(), cfg)
}

func TestLoadConfig_Durations(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
source:
  path: groups.db
  format: sqlite
  table: teams
cache:
  ttl: 90s
watch:
  debounce: 2s
hierarchy:
  include_unknown: true
tracing:
  enabled: true
  exporter: stdout
`)
	require.Equal(t, SourceConfig{Path: "groups.db", Format: "sqlite", Table: "teams"}, cfg.Source)
	require.Equal(t, 90*time.Second, cfg.Cache.TTL)
	require.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	require.True(t, cfg.Hierarchy.IncludeUnknown)
	require.True(t, cfg.Tracing.Enabled)
	require.Equal(t, "stdout", cfg.Tracing.Exporter)
	// Untouched keys keep their defaults.
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, 1.0, cfg.Tracing.SampleRate)
}

func TestWriteDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", ".pulsar", "config.yaml")

	require.NoError(t, WriteDefaultConfig(configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDefaultTracesFilePath(t *testing.T) {
	path := DefaultTracesFilePath()
	if path == "" {
		t.Skip("no home directory")
	}
	require.Equal(t, "traces.jsonl", filepath.Base(path))
	require.Contains(t, path, filepath.Join(".config", "pulsar"))
}
