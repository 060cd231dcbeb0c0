// watchdo watches a directory tree and runs a command when files change,
// throttled to at most one invocation per debounce window.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"watchdo/config"
	"watchdo/internal/hub"
	"watchdo/internal/journal"
	"watchdo/internal/patterns"
	"watchdo/internal/runner"
	"watchdo/internal/watcher"
)

var (
	flagExtensions []string
	flagCommand    string
	flagIgnore     []string
	flagDebounceMs int
	flagJournal    string
	flagServe      int
)

var rootCmd = &cobra.Command{
	Use:   "watchdo PATH",
	Short: "Run a command when files under PATH change",
	Long: `watchdo watches PATH recursively and, when a matching file changes,
spawns the configured command. Invocations are rate limited to one per
debounce window, so a burst of saves triggers a single run.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func main() {
	cfg := config.LoadConfig()

	rootCmd.Flags().StringSliceVarP(&flagExtensions, "ext", "e", nil, "only react to files with these extensions (no dot, repeatable)")
	rootCmd.Flags().StringVarP(&flagCommand, "command", "c", "", "command line to run on change (split on whitespace)")
	rootCmd.Flags().StringSliceVar(&flagIgnore, "ignore", nil, "glob patterns for paths to ignore (repeatable)")
	rootCmd.Flags().IntVar(&flagDebounceMs, "debounce-ms", cfg.DebounceMs, "minimum milliseconds between two command runs")
	rootCmd.Flags().StringVar(&flagJournal, "journal", cfg.JournalPath, "record events, runs and diffs in this SQLite file")
	rootCmd.Flags().IntVar(&flagServe, "serve", cfg.SSEPort, "serve change events over SSE on this port (0 disables)")

	rootCmd.AddCommand(newHistoryCmd(cfg), newDiffsCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger := log.New(os.Stdout, "", log.LstdFlags)

	matcher, err := patterns.NewMatcher(flagIgnore)
	if err != nil {
		return fmt.Errorf("invalid ignore pattern: %w", err)
	}

	source, err := watcher.NewFSSource(path, matcher)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}
	defer source.Close()

	var sinks []watcher.Sink
	var run watcher.CommandRunner = runner.New()

	if flagJournal != "" {
		j, err := journal.Open(flagJournal, logger)
		if err != nil {
			return err
		}
		defer j.Close()
		sinks = append(sinks, j)
		run = j.WrapRunner(run)
		logger.Printf("Journaling to %s (session %s)", flagJournal, j.SessionID())
	}

	if flagServe > 0 {
		h := hub.New(logger)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go h.Run(ctx)

		srv := hub.NewHTTPServer(h, flagServe, logger)
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				logger.Printf("SSE server stopped: %v", err)
			}
		}()
		defer srv.Shutdown()
		sinks = append(sinks, h)
		logger.Printf("Serving events on :%d", flagServe)
	}

	w := watcher.New(source, watcher.Options{
		Extensions: flagExtensions,
		Command:    flagCommand,
		Window:     time.Duration(flagDebounceMs) * time.Millisecond,
		Runner:     run,
		Sinks:      sinks,
		Logger:     logger,
	})

	logger.Printf("Watching %s", path)
	w.Run()

	return nil
}
