package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/history"
)

var historyLimit int

// historyCmd lists recorded generation runs
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent generation runs",
	Long: `Lists the most recent generation runs with their token and cost
figures. Use "history stats" for per-model totals.`,
	RunE: runHistory,
}

// historyStatsCmd aggregates runs per model
var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-model run totals",
	RunE:  runHistoryStats,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of runs to show")
	historyCmd.AddCommand(historyStatsCmd)

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(cfg.HistoryDir())
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No generation runs recorded yet.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %-9s  %-24s  %6d in / %5d out  $%.6f  %s\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.Status, e.Model,
			e.InputTokens, e.OutputTokens, e.Cost, truncate(e.Description, 48))
		if e.Status == history.StatusFailed && e.Error != "" {
			fmt.Printf("%19s%s\n", "", truncate(e.Error, 90))
		}
	}
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(cfg.HistoryDir())
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No generation runs recorded yet.")
		return nil
	}

	fmt.Printf("%-24s  %5s  %10s  %10s  %10s\n", "MODEL", "RUNS", "TOKENS IN", "TOKENS OUT", "COST")
	for _, ms := range stats {
		fmt.Printf("%-24s  %5d  %10d  %10d  $%.6f\n",
			ms.Model, ms.Runs, ms.InputTokens, ms.OutputTokens, ms.Cost)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
