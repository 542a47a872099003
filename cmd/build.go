package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/pulsar/internal/config"
	"github.com/zjrosen/pulsar/internal/log"
)

var buildCmd = &cobra.Command{
	Use:   "build [PATH]",
	Short: "Build and print the group hierarchy",
	Long: `Load flat group records, resolve parents and print the resulting forest.

PATH defaults to source.path from the config. The format is taken from the
file extension unless --format is given.

Examples:
  # Print a tree
  pulsar build groups.json

  # Read a SQLite table and print JSON
  pulsar build org.db --table teams -o json

  # Count roots with jq
  pulsar build groups.yaml -o json | jq '.roots | length'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := applyFlags(cmd, args, cfg)
		if err != nil {
			return err
		}
		return runBuild(cmd.Context(), c, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	sourceFlags(buildCmd)
	rootCmd.AddCommand(buildCmd)
}

func runBuild(ctx context.Context, c config.Config, out, errOut io.Writer) error {
	src, err := openSource(c.Source)
	if err != nil {
		return err
	}

	provider, err := newProvider(c.Tracing)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer shutdown(provider)

	svc := newService(c, provider, nil)
	snap, err := svc.Build(ctx, src.path, src.loader)
	if err != nil {
		return err
	}

	for _, id := range snap.Duplicates {
		_, _ = fmt.Fprintf(errOut, "warning: duplicate group %s skipped\n", id)
	}
	for _, id := range snap.Report.Promoted {
		_, _ = fmt.Fprintf(errOut, "warning: parent cycle broken at %s\n", id)
	}
	log.Debug(log.CatCLI, "rendering", "output", c.Output.Format, "roots", snap.Report.Roots)
	return render(out, c.Output.Format, snap)
}
