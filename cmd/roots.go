package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/pulsar/internal/config"
	"github.com/zjrosen/pulsar/internal/domain/groups"
)

var rootExternalIDs []string

var rootsCmd = &cobra.Command{
	Use:   "roots [PATH]",
	Short: "List the roots of the built hierarchy",
	Long: `List the roots of the built forest as JSON, with the size of each tree.

Use --external-id to select roots by their id in the source system
(repeatable). Ids that are not roots are reported on stderr. The listing is
always JSON; --output is ignored.

Examples:
  # List all roots
  pulsar roots groups.json

  # Select specific roots
  pulsar roots groups.json -e eng -e sales

  # Names only
  pulsar roots groups.json | jq '.[].name'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := applyFlags(cmd, args, cfg)
		if err != nil {
			return err
		}
		return runRoots(cmd.Context(), c, rootExternalIDs, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	sourceFlags(rootsCmd)
	rootsCmd.Flags().StringArrayVarP(&rootExternalIDs, "external-id", "e", nil, "select a root by external id (repeatable)")
	rootCmd.AddCommand(rootsCmd)
}

// rootSummary is one listed root.
type rootSummary struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Size       int    `json:"size"` // groups in the tree, the root included
}

func runRoots(ctx context.Context, c config.Config, externalIDs []string, out, errOut io.Writer) error {
	src, err := openSource(c.Source)
	if err != nil {
		return err
	}

	provider, err := newProvider(c.Tracing)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer shutdown(provider)

	snap, err := newService(c, provider, nil).Build(ctx, src.path, src.loader)
	if err != nil {
		return err
	}

	roots := selectRoots(snap.Forest, externalIDs, errOut)
	summaries := make([]rootSummary, 0, len(roots))
	for _, root := range roots {
		summaries = append(summaries, rootSummary{
			ID:         root.ID(),
			ExternalID: root.ExternalID(),
			Name:       root.Name(),
			Size:       groups.Count([]*groups.Group{root}),
		})
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summaries)
}

// selectRoots returns every root, or the roots named by externalIDs in the
// order given.
func selectRoots(forest groups.Forest, externalIDs []string, errOut io.Writer) []*groups.Group {
	if len(externalIDs) == 0 {
		return forest.Values()
	}
	result := make([]*groups.Group, 0, len(externalIDs))
	for _, ext := range externalIDs {
		id, ok := forest.GUID(ext)
		if !ok {
			_, _ = fmt.Fprintf(errOut, "warning: %s is not a root\n", ext)
			continue
		}
		if root, ok := forest.Get(id); ok {
			result = append(result, root)
		}
	}
	return result
}
