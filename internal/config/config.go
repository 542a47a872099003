// Package config provides configuration types and defaults for pulsar.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/pulsar/internal/infrastructure/loading"
	"github.com/zjrosen/pulsar/internal/infrastructure/sqlite"
	"github.com/zjrosen/pulsar/internal/log"
	"github.com/zjrosen/pulsar/internal/paths"
	"github.com/zjrosen/pulsar/internal/tracing"
)

// Output formats for rendered forests.
const (
	OutputTree = "tree"
	OutputJSON = "json"
)

// Config holds all configuration options for pulsar.
type Config struct {
	Source    SourceConfig    `mapstructure:"source"`
	Hierarchy HierarchyConfig `mapstructure:"hierarchy"`
	Output    OutputConfig    `mapstructure:"output"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Watch     WatchConfig     `mapstructure:"watch"`
	Log       LogConfig       `mapstructure:"log"`
	Tracing   tracing.Config  `mapstructure:"tracing"`
}

// SourceConfig locates the flat group records.
type SourceConfig struct {
	Path   string `mapstructure:"path" yaml:"path"`
	Format string `mapstructure:"format" yaml:"format,omitempty"` // empty detects from the extension
	Table  string `mapstructure:"table" yaml:"table,omitempty"`   // sqlite sources only
}

// HierarchyConfig tunes forest construction.
type HierarchyConfig struct {
	// IncludeUnknown adds the reserved unknown group as an extra root.
	IncludeUnknown bool `mapstructure:"include_unknown"`
}

// OutputConfig selects how a forest is printed.
type OutputConfig struct {
	Format string `mapstructure:"format"` // "tree" (default) or "json"
}

// CacheConfig controls the in-memory forest cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// WatchConfig controls rebuilds on source changes.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	Debug bool   `mapstructure:"debug"`
	Path  string `mapstructure:"path"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/pulsar/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	dir := paths.ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Source: SourceConfig{
			Table: sqlite.DefaultTable,
		},
		Output: OutputConfig{
			Format: OutputTree,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Log: LogConfig{
			Path: "debug.log",
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks the configuration for errors. Empty values fall back to
// defaults and are accepted.
func Validate(cfg Config) error {
	if cfg.Source.Format != "" {
		if _, err := loading.ParseFormat(cfg.Source.Format); err != nil {
			return fmt.Errorf("source.format: %w", err)
		}
	}

	switch cfg.Output.Format {
	case "", OutputTree, OutputJSON:
	default:
		return fmt.Errorf("output.format must be %q or %q, got %q", OutputTree, OutputJSON, cfg.Output.Format)
	}

	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %v", cfg.Cache.TTL)
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %v", cfg.Watch.Debounce)
	}

	return ValidateTracing(cfg.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	if t.Exporter != "" {
		switch t.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
		}
	}

	// Endpoint requirements only matter once spans are exported.
	if t.Enabled && t.Exporter == "otlp" && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Pulsar Configuration

# Where the flat group records come from
source:
  # path: groups.json        # JSON, YAML, XML or SQLite file (or pass it as an argument)
  # format: json             # json, yaml, xml, sqlite (default: from the file extension)
  table: groups              # table read from SQLite sources

# Forest construction
hierarchy:
  include_unknown: false     # Add the reserved "unknown" group as an extra root

# Output settings
output:
  format: tree               # tree (default) or json

# In-memory cache of built forests, keyed by source and modification time
cache:
  enabled: true
  ttl: 10m

# pulsar watch settings
watch:
  debounce: 500ms            # Quiet period before rebuilding after a change

# Debug logging (also enabled by --debug or PULSAR_DEBUG=1)
log:
  debug: false
  path: debug.log

# Tracing of forest builds
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/pulsar/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
