package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/config"
)

// configCmd is the parent command for configuration management
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the aisimogen configuration file",
}

// configInitCmd writes a default config file
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Writes the default configuration to the --config path, or to
~/.aisimogen/config.yaml when no path is given. Refuses to overwrite
an existing file.`,
	RunE: runConfigInit,
}

// configShowCmd prints the effective configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after defaults, the config file and
environment overrides have been applied. The API key is masked.`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd, configShowCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	shown := *cfg
	if shown.LLM.APIKey != "" {
		shown.LLM.APIKey = masked(shown.LLM.APIKey)
	}

	data, err := yaml.Marshal(&shown)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Printf("# %s\n%s", configPath(), data)
	return nil
}

// masked keeps enough of a key to recognize it without exposing it.
func masked(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
