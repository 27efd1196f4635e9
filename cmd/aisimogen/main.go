package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/config"
)

var (
	// Global flags
	verbose bool
	cfgPath string

	// Shared state built by the root PersistentPreRunE.
	logger *zap.Logger
	cfg    *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aisimogen",
	Short: "AI Simscape Model Generator",
	Long: `aisimogen turns natural language descriptions of electrical circuits
into Simscape models.

A language model drafts an abstract circuit as JSON, the draft is checked
against the circuit schema and autocorrected when it references unknown
components or connections, and the accepted circuit is compiled into a
detailed system of subsystems, solver and reference blocks. Each run
leaves behind the system JSON, a MATLAB build script and a history row.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath())
		if err != nil {
			return err
		}
		return cfg.Validate()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// configPath resolves the --config flag against the default location.
func configPath() string {
	if cfgPath != "" {
		return cfgPath
	}
	return config.DefaultPath()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default: ~/.aisimogen/config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
