package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/model"
)

// inspectCmd prints a summary and connectivity report for a system
var inspectCmd = &cobra.Command{
	Use:   "inspect [system.json]",
	Short: "Summarize a saved system and check its wiring",
	Long: `Loads a saved system and prints its simulation parameters, its
subsystems and a connectivity report. Port names that contradict
their connection's direction and unreachable components are
reported and make the command exit nonzero.

Example:
  aisimogen inspect data/json/output/system_Blinker_20260825_1200.json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	sys, err := model.LoadJSON(args[0])
	if err != nil {
		return fmt.Errorf("failed to load system: %w", err)
	}

	fmt.Printf("System: %s\n", sys.Name())
	fmt.Printf("  Solver:      %s\n", sys.Solver)
	fmt.Printf("  Stop time:   %d\n", sys.StopTime)
	fmt.Printf("  Components:  %d top-level\n", len(sys.Components()))
	fmt.Printf("  Connections: %d top-level\n", len(sys.Connections()))

	subs := sys.Subsystems()
	fmt.Printf("\nSubsystems (%d):\n", len(subs))
	for _, sub := range subs {
		line := fmt.Sprintf("  %s: %d components, %d connections",
			sub.UniqueName(), len(sub.Components()), len(sub.Connections()))
		if sub.FaultTolerance > 0 {
			line += fmt.Sprintf(", fault tolerance %d", sub.FaultTolerance)
		}
		fmt.Println(line)
	}

	hasIssue := false

	warnings := sys.CheckAllConnections()
	if len(warnings) > 0 {
		hasIssue = true
		fmt.Printf("\nPort warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("  %s\n", w)
		}
	}

	fmt.Println("\nConnectivity:")
	hasIssue = reportConnectivity("top level", sys.Graph()) || hasIssue
	for _, sub := range subs {
		hasIssue = reportConnectivity(sub.UniqueName(), sub.Graph()) || hasIssue
	}

	if hasIssue {
		os.Exit(1)
	}
	return nil
}

// reportConnectivity prints one connectivity line and reports whether
// the graph is disconnected.
func reportConnectivity(scope string, g *model.WiringGraph) bool {
	state := "connected"
	if !g.Connected() {
		state = "DISCONNECTED"
	}
	fmt.Printf("  %s: %d nodes, %d edges, %s\n", scope, g.NodeCount(), g.EdgeCount(), state)
	return !g.Connected()
}
