package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/pulsar/internal/config"
	"github.com/zjrosen/pulsar/internal/infrastructure/loading"
)

// defaultConfigPath is where config:init writes when no PATH is given.
const defaultConfigPath = ".pulsar/config.yaml"

var configInitCmd = &cobra.Command{
	Use:   "config:init [PATH]",
	Short: "Write a commented default config file",
	Long: `Write the default configuration, with comments, to PATH
(default: .pulsar/config.yaml).

Examples:
  pulsar config:init
  pulsar config:init --source groups.json
  pulsar config:init ~/.config/pulsar/config.yaml --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigPath
		if len(args) > 0 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		sourcePath, _ := cmd.Flags().GetString("source")
		if err := initConfigFile(path, sourcePath, force); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	configInitCmd.Flags().String("source", "", "record this source path in the new config")
	rootCmd.AddCommand(configInitCmd)
}

// initConfigFile writes the default config to path and optionally records
// sourcePath in it.
func initConfigFile(path, sourcePath string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if sourcePath != "" {
		// Reject sources no loader can read before touching the file.
		if _, err := loading.DetectFormat(sourcePath); err != nil {
			return err
		}
	}

	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	if sourcePath == "" {
		return nil
	}
	return config.SaveSource(path, config.SourceConfig{
		Path:  sourcePath,
		Table: config.Defaults().Source.Table,
	})
}
