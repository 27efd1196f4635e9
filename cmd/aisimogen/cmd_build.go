package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/pipeline"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/request"
)

// buildCmd compiles an abstract circuit file without calling any LLM
var buildCmd = &cobra.Command{
	Use:   "build [abstract.json]",
	Short: "Build a detailed system from an abstract circuit file",
	Long: `Reads an abstract circuit document, validates it against the circuit
schema and compiles it into a detailed system. No language model is
involved, so the run leaves no history row.

Example:
  aisimogen build data/json/blinker.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	doc, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read abstract circuit: %w", err)
	}

	// Builds never reach the client, the pipeline only needs one to exist.
	pipe, err := newPipeline(request.NewOfflineClient(), nil)
	if err != nil {
		return err
	}

	report, err := pipe.BuildDocument(doc, pipeline.ModelNameFromPath(args[0]))
	if err != nil {
		return err
	}

	printReport(report)
	return nil
}
