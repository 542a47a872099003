package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/pulsar/internal/application/forest"
	"github.com/zjrosen/pulsar/internal/config"
	"github.com/zjrosen/pulsar/internal/log"
	"github.com/zjrosen/pulsar/internal/presentation"
	"github.com/zjrosen/pulsar/internal/pubsub"
	"github.com/zjrosen/pulsar/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [PATH]",
	Short: "Rebuild the hierarchy whenever the source changes",
	Long: `Build the forest, print it, then rebuild each time the source file
changes. With tree output only the lines that changed are printed after the
first build; JSON output prints the whole forest every time.

Stop with Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := applyFlags(cmd, args, cfg)
		if err != nil {
			return err
		}
		if d, _ := cmd.Flags().GetDuration("debounce"); cmd.Flags().Changed("debounce") {
			c.Watch.Debounce = d
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, c, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	sourceFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", 0, "quiet period before rebuilding (default from watch.debounce)")
	rootCmd.AddCommand(watchCmd)
}

// runWatch rebuilds on every change signal until ctx is cancelled.
func runWatch(ctx context.Context, c config.Config, out, errOut io.Writer) error {
	src, err := openSource(c.Source)
	if err != nil {
		return err
	}

	provider, err := newProvider(c.Tracing)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer shutdown(provider)

	broker := pubsub.NewBroker[forest.Update]()
	defer broker.Close()
	svc := newService(c, provider, broker)

	w, err := watcher.New(watcher.Config{Path: src.path, Debounce: c.Watch.Debounce})
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	subCtx, cancel := context.WithCancel(ctx)
	printer := &updatePrinter{out: out, errOut: errOut, outputFormat: c.Output.Format}
	done := make(chan struct{})
	events := broker.Subscribe(subCtx)
	go func() {
		defer close(done)
		for evt := range events {
			printer.print(evt)
		}
	}()

	rebuild := func() {
		// Failures reach the printer through the broker.
		_, _ = svc.Rebuild(ctx, src.cacheKey(), src.path, src.loader)
	}
	rebuild()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case _, ok := <-changes:
			if !ok {
				break loop
			}
			log.Debug(log.CatWatcher, "source changed, rebuilding", "path", src.path)
			rebuild()
		}
	}

	cancel()
	<-done
	return nil
}

// updatePrinter renders published build outcomes. Tree output after the
// first successful build is printed as a line diff.
type updatePrinter struct {
	out          io.Writer
	errOut       io.Writer
	outputFormat string
	prev         string
	printed      bool
}

func (p *updatePrinter) print(evt pubsub.Event[forest.Update]) {
	update := evt.Payload
	if evt.Type == pubsub.FailedEvent {
		_, _ = fmt.Fprintf(p.errOut, "%s rebuild failed: %v\n", evt.Timestamp.Format("15:04:05"), update.Err)
		return
	}

	snap := update.Snapshot
	if p.outputFormat == config.OutputJSON || !p.printed {
		if err := render(p.out, p.outputFormat, snap); err != nil {
			_, _ = fmt.Fprintf(p.errOut, "render failed: %v\n", err)
			return
		}
		p.prev = presentation.RenderTree(snap.Roots())
		p.printed = true
		return
	}

	next := presentation.RenderTree(snap.Roots())
	header := fmt.Sprintf("%s %s: %d groups, %d roots",
		evt.Timestamp.Format("15:04:05"), update.Source, snap.Report.Total, snap.Report.Roots)
	diff := presentation.Diff(p.prev, next)
	if diff == "" {
		_, _ = fmt.Fprintf(p.out, "%s (no changes)\n", header)
	} else {
		_ = presentation.NewFormatter(p.out).FormatDiff(header, diff)
	}
	p.prev = next
}
