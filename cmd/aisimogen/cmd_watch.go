package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/pipeline"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/request"
)

// watchCmd rebuilds systems whenever an abstract circuit file changes
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and rebuild models on change",
	Long: `Watches a directory for abstract circuit JSON files and rebuilds the
detailed system and script whenever one is created or modified.
Runs until interrupted.

Example:
  aisimogen watch data/json`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipe, err := newPipeline(request.NewOfflineClient(), nil)
	if err != nil {
		return err
	}

	watcher, err := pipeline.NewWatcher(args[0], pipe, logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}

	fmt.Printf("Watching %s for abstract circuits. Press Ctrl+C to stop.\n", args[0])

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	<-sigCh

	watcher.Stop()

	stats := watcher.Stats()
	fmt.Printf("\nStopped. %d builds triggered, %d failed.\n",
		stats.BuildsTriggered, stats.BuildsFailed)
	return nil
}
