package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/pulsar/internal/application/forest"
	"github.com/zjrosen/pulsar/internal/cachemanager"
	"github.com/zjrosen/pulsar/internal/config"
	"github.com/zjrosen/pulsar/internal/domain/groups"
	"github.com/zjrosen/pulsar/internal/infrastructure/loading"
	"github.com/zjrosen/pulsar/internal/infrastructure/sqlite"
	"github.com/zjrosen/pulsar/internal/paths"
	"github.com/zjrosen/pulsar/internal/presentation"
	"github.com/zjrosen/pulsar/internal/pubsub"
	"github.com/zjrosen/pulsar/internal/tracing"
)

// source is a resolved group source.
type source struct {
	path   string
	format loading.Format
	table  string
	loader groups.Loader
}

// openSource resolves the source path and format and creates its loader.
func openSource(sc config.SourceConfig) (*source, error) {
	if strings.TrimSpace(sc.Path) == "" {
		return nil, fmt.Errorf("no source: pass PATH or set source.path")
	}

	path := paths.ExpandHome(sc.Path)
	format, err := loading.Resolve(path, sc.Format)
	if err != nil {
		return nil, err
	}

	var loader groups.Loader
	if format == loading.FormatSQLite {
		loader, err = sqlite.NewLoader(path, sc.Table)
	} else {
		loader, err = loading.New(path, format)
	}
	if err != nil {
		return nil, err
	}

	return &source{path: path, format: format, table: sc.Table, loader: loader}, nil
}

// cacheKey identifies one version of the source. The modification time is
// part of the key, so an edited file never hits a stale snapshot.
func (s *source) cacheKey() string {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		abs = s.path
	}
	var modTime int64
	if info, err := os.Stat(abs); err == nil {
		modTime = info.ModTime().UnixNano()
	}
	return fmt.Sprintf("%s|%s|%s|%d", abs, s.format, s.table, modTime)
}

// sourceFlags adds the flags shared by commands that read a source.
func sourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "source format: json, yaml, xml, sqlite (default: from extension)")
	cmd.Flags().String("table", "", "table to read from SQLite sources (default: groups)")
	cmd.Flags().Bool("include-unknown", false, "add the reserved unknown group as an extra root")
	cmd.Flags().StringP("output", "o", "", "output format: tree or json")
}

// applyFlags overlays explicitly set flags and the PATH argument on cfg.
func applyFlags(cmd *cobra.Command, args []string, c config.Config) (config.Config, error) {
	if len(args) > 0 {
		c.Source.Path = args[0]
	}
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		c.Source.Format = f.Value.String()
	}
	if f := cmd.Flags().Lookup("table"); f != nil && f.Changed {
		c.Source.Table = f.Value.String()
	}
	if cmd.Flags().Changed("include-unknown") {
		include, _ := cmd.Flags().GetBool("include-unknown")
		c.Hierarchy.IncludeUnknown = include
	}
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		c.Output.Format = f.Value.String()
	}
	return c, config.Validate(c)
}

// newProvider starts tracing, defaulting the trace file location.
func newProvider(tc tracing.Config) (*tracing.Provider, error) {
	if tc.Enabled && tc.Exporter == "file" && tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	tc.FilePath = paths.ExpandHome(tc.FilePath)
	return tracing.NewProvider(tc)
}

// newService creates the forest service described by c.
func newService(c config.Config, provider *tracing.Provider, publisher pubsub.Publisher[forest.Update]) *forest.Service {
	opts := []forest.Option{
		forest.WithTracer(provider.Tracer()),
		forest.WithUnknownGroup(c.Hierarchy.IncludeUnknown),
	}
	if c.Cache.Enabled {
		cache := cachemanager.NewInMemoryCacheManager[string, *forest.Snapshot]("forest", c.Cache.TTL, time.Minute)
		opts = append(opts, forest.WithCache(cache, c.Cache.TTL))
	}
	if publisher != nil {
		opts = append(opts, forest.WithPublisher(publisher))
	}
	return forest.NewService(opts...)
}

// render writes snap in the configured output format.
func render(w io.Writer, outputFormat string, snap *forest.Snapshot) error {
	formatter := presentation.NewFormatter(w)
	if outputFormat == config.OutputJSON {
		return formatter.FormatForest(presentation.FromDomainForest(snap.Source, snap.Forest, snap.Report))
	}
	return formatter.FormatTree(presentation.RenderTree(snap.Roots()))
}

// shutdown flushes spans, bounded so a dead collector cannot hang exit.
func shutdown(provider *tracing.Provider) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = provider.Shutdown(ctx)
}
