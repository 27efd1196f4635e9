package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/config"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/history"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/pipeline"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/prompt"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/request"
)

var (
	generateCandidates int
	generateOffline    bool
	generateSummary    bool
	generateName       string
)

// generateCmd turns a description into a Simscape model
var generateCmd = &cobra.Command{
	Use:   "generate [description]",
	Short: "Generate a Simscape model from a circuit description",
	Long: `Sends the description to the configured language model, interprets
the returned abstract circuit and compiles it into a detailed system.
The system JSON and the MATLAB build script land in the data directory.

Examples:
  aisimogen generate "a battery powering a lamp through a switch"
  aisimogen generate --candidates 3 --name Blinker "a blinking light circuit"
  aisimogen generate --offline "a battery powering a lamp through a switch"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&generateCandidates, "candidates", 0, "Generate N candidates in parallel, keep the first success (default: config)")
	generateCmd.Flags().BoolVar(&generateOffline, "offline", false, "Use the canned offline response instead of a provider")
	generateCmd.Flags().BoolVar(&generateSummary, "summary", false, "Summarize the description before modeling")
	generateCmd.Flags().StringVar(&generateName, "name", "", "Name for the generated model")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	description := strings.Join(args, " ")
	logger.Info("generating model", zap.String("description", description))

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	store, err := history.NewStore(cfg.HistoryDir())
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	pipe, err := newPipeline(client, store)
	if err != nil {
		return err
	}

	candidates := generateCandidates
	if candidates <= 0 {
		candidates = cfg.Generation.Candidates
	}

	var report *pipeline.Report
	if candidates > 1 {
		fmt.Printf("Generating %d candidates...\n", candidates)
		report, err = pipe.GenerateCandidates(ctx, description, candidates)
	} else {
		report, err = pipe.Generate(ctx, description)
	}
	if err != nil {
		return err
	}

	printReport(report)
	return nil
}

// newLLMClient builds the provider client the config asks for. The
// offline flag and the offline provider both short-circuit to the
// canned client, which needs no API key.
func newLLMClient(cfg *config.Config) (request.Client, error) {
	if generateOffline || cfg.LLM.Offline || cfg.LLM.Provider == string(request.ProviderOffline) {
		return request.NewOfflineClient(), nil
	}

	pc := &request.ProviderConfig{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.RequestTimeout(),
		MaxRetries:  cfg.LLM.Retries,
		Logger:      logger,
	}

	if cfg.LLM.Provider == "" {
		detected, err := request.DetectProvider()
		if err != nil {
			return nil, err
		}
		pc.Provider = detected.Provider
		pc.APIKey = detected.APIKey
	} else {
		pc.Provider = request.Provider(cfg.LLM.Provider)
		pc.APIKey = cfg.LLM.APIKey
	}

	if pc.APIKey == "" {
		key, err := request.APIKeyForProvider(pc.Provider)
		if err != nil {
			return nil, err
		}
		pc.APIKey = key
	}

	return request.NewClientFromConfig(pc)
}

// newPipeline assembles a pipeline from the loaded config. A nil
// store skips history recording.
func newPipeline(client request.Client, store *history.Store) (*pipeline.Pipeline, error) {
	maxCorrections := cfg.Generation.MaxCorrections
	if maxCorrections == 0 {
		maxCorrections = -1
	}

	summarize := generateSummary || cfg.Generation.Summarize

	provider := cfg.LLM.Provider
	if generateOffline || cfg.LLM.Offline {
		provider = string(request.ProviderOffline)
	}

	return pipeline.New(client, pipeline.Options{
		Provider:       provider,
		ModelName:      generateName,
		MaxCorrections: maxCorrections,
		Summarize:      summarize,
		Solver:         cfg.Simulation.Solver,
		StopTime:       cfg.Simulation.StopTime,
		SystemJSONDir:  cfg.SystemJSONDir(),
		ScriptDir:      cfg.ScriptDir(),
		Artifacts:      prompt.NewArtifacts(cfg.ArtifactsDir(), logger),
		History:        store,
		Logger:         logger,
	})
}

func printReport(report *pipeline.Report) {
	fmt.Printf("\nModel generated: %s\n", report.System.Name())
	if report.Model != "" {
		fmt.Printf("  LLM:          %s\n", report.Model)
		fmt.Printf("  Corrections:  %d\n", report.Corrections)
		fmt.Printf("  Tokens:       %d in / %d out\n", report.InputTokens, report.OutputTokens)
		fmt.Printf("  Cost:         $%.6f\n", report.Cost)
		fmt.Printf("  Duration:     %s\n", report.Duration.Round(time.Millisecond))
	}
	fmt.Printf("  Subsystems:   %d\n", len(report.System.Subsystems()))
	if report.SystemPath != "" {
		fmt.Printf("  System JSON:  %s\n", report.SystemPath)
	}
	if report.ScriptPath != "" {
		fmt.Printf("  Script:       %s\n", report.ScriptPath)
	}
}
