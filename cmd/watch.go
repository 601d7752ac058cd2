package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/conneroisu/mvcgen/internal/build"
	"github.com/conneroisu/mvcgen/internal/parser"
	"github.com/conneroisu/mvcgen/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Regenerate code whenever a controller or view changes",
	Long: `Build once, then watch the controllers and views directories and rebuild
after every batch of changes. Unchanged files are served from a parse cache.

Examples:
  mvcgen watch                     # Watch the configured directories
  mvcgen watch --delay 500ms       # Wait longer before rebuilding`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	addDirFlags(watchCmd.Flags())
	addServerFlags(watchCmd.Flags())
	watchCmd.Flags().Duration("delay", watcher.DefaultDelay, "Debounce delay before rebuilding")
	watchCmd.Flags().Int("cache-size", parser.DefaultCacheSize, "Number of parsed files kept per kind")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	delay, _ := cmd.Flags().GetDuration("delay")
	cacheSize, _ := cmd.Flags().GetInt("cache-size")

	cache, err := parser.NewCache(cacheSize)
	if err != nil {
		return fmt.Errorf("failed to create parse cache: %w", err)
	}
	pipeline := build.NewPipeline(cfg.Dirs(), cfg.Target(), cache, logger)

	out := cmd.OutOrStdout()
	report := func(result build.BuildResult) {
		if result.Error != nil {
			fmt.Fprintf(out, "Build failed: %v\n", result.Error)
			return
		}
		fmt.Fprintln(out, result.Summary())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fw, err := watcher.NewFileWatcher(delay, logger)
	if err != nil {
		return err
	}
	fw.AddFilter(watcher.SourceFilter)
	fw.AddFilter(watcher.NoHiddenFilter)
	fw.AddHandler(rebuildHandler(pipeline, report))

	if err := fw.WatchDirs(cfg.Dirs()); err != nil {
		_ = fw.Stop()
		return fmt.Errorf("failed to watch directories: %w", err)
	}

	report(pipeline.Build(ctx))

	if err := fw.Start(ctx); err != nil {
		_ = fw.Stop()
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	fmt.Fprintln(out, "Watching for changes... (Press Ctrl+C to stop)")

	<-ctx.Done()
	err = fw.Stop()
	fw.Wait()

	snapshot := pipeline.Metrics().GetSnapshot()
	fmt.Fprintf(out, "Stopped after %d builds (%d failed, average %s, %.0f%% parse cache hits)\n",
		snapshot.TotalBuilds, snapshot.FailedBuilds,
		snapshot.AverageDuration.Round(time.Millisecond), pipeline.Metrics().GetCacheHitRate())
	return err
}

// rebuildHandler forgets deleted sources and rebuilds once per batch.
func rebuildHandler(pipeline *build.Pipeline, report build.BuildCallback) watcher.ChangeHandler {
	return func(ctx context.Context, events []watcher.ChangeEvent) error {
		for _, event := range events {
			if event.Gone() {
				pipeline.Forget(event.Path)
			}
		}
		report(pipeline.Build(ctx))
		return nil
	}
}
