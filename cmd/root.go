package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/pulsar/internal/config"
	"github.com/zjrosen/pulsar/internal/log"
)

var (
	version   = "dev"
	cfgFile   string
	debug     bool
	cfg       config.Config
	configErr error
)

// closeLog flushes the debug log file, if one was opened.
var closeLog = func() {}

var rootCmd = &cobra.Command{
	Use:   "pulsar",
	Short: "Consolidate flat group records into a hierarchy",
	Long: `pulsar reads flat group records (JSON, YAML, XML or a SQLite table),
resolves each record's parent reference and prints the resulting forest.
Unknown parents become roots and parent cycles are broken deterministically.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { closeLog() },
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .pulsar/config.yaml, then ~/.config/pulsar/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"write debug logs (also PULSAR_DEBUG=1)")
}

// setDefaults registers every config key with viper so environment
// variables such as PULSAR_CACHE_TTL are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("source.path", defaults.Source.Path)
	v.SetDefault("source.format", defaults.Source.Format)
	v.SetDefault("source.table", defaults.Source.Table)
	v.SetDefault("hierarchy.include_unknown", defaults.Hierarchy.IncludeUnknown)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.ttl", defaults.Cache.TTL)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)
	v.SetDefault("log.debug", defaults.Log.Debug)
	v.SetDefault("log.path", defaults.Log.Path)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
}

func initConfig() {
	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("PULSAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .pulsar/config.yaml (current directory)
		// 2. ~/.config/pulsar/config.yaml (user config)
		if _, err := os.Stat(".pulsar/config.yaml"); err == nil {
			viper.SetConfigFile(".pulsar/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "pulsar"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	configErr = viper.ReadInConfig()
}

// setup validates the loaded config and starts debug logging.
func setup(cmd *cobra.Command, _ []string) error {
	// No config file found anywhere is fine; defaults and flags still apply.
	// An explicit --config that is missing surfaces as a path error instead.
	var notFound viper.ConfigFileNotFoundError
	if configErr != nil && !errors.As(configErr, &notFound) {
		return fmt.Errorf("reading config: %w", configErr)
	}
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if debug || cfg.Log.Debug || os.Getenv("PULSAR_DEBUG") != "" {
		closer, err := log.Init(cfg.Log.Path)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		closeLog = closer
		log.Info(log.CatCLI, "starting", "command", cmd.CommandPath(), "version", version, "config", viper.ConfigFileUsed())
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
