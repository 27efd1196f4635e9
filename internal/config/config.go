// Package config loads the generator configuration from a YAML file,
// with environment variables taking precedence over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all generator configuration.
type Config struct {
	// LLM provider configuration
	LLM LLMConfig `yaml:"llm"`

	// Generation loop settings
	Generation GenerationConfig `yaml:"generation"`

	// Simulation parameters applied to built systems
	Simulation SimulationConfig `yaml:"simulation"`

	// Output locations
	Paths PathsConfig `yaml:"paths"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the model client.
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // openai, anthropic, together, gemini, offline
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	Timeout     string  `yaml:"timeout"`
	Retries     int     `yaml:"retries"`
	Offline     bool    `yaml:"offline"`
}

// GenerationConfig configures the generation loop.
type GenerationConfig struct {
	// Attempts at correcting an invalid model before giving up
	MaxCorrections int `yaml:"max_corrections"`

	// Parallel candidate requests per generation
	Candidates int `yaml:"candidates"`

	// Summarize the description before modeling
	Summarize bool `yaml:"summarize"`
}

// SimulationConfig configures the simulation parameters written into
// generated systems.
type SimulationConfig struct {
	Solver   string `yaml:"solver"`
	StopTime int    `yaml:"stop_time"` // seconds
}

// PathsConfig configures where generated artifacts land.
type PathsConfig struct {
	DataDir string `yaml:"data_dir"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration. The empty provider
// means detect from whichever API key the environment carries.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "",
			Model:       "",
			Temperature: 1.0,
			Timeout:     "120s",
			Retries:     3,
		},

		Generation: GenerationConfig{
			MaxCorrections: 3,
			Candidates:     1,
			Summarize:      false,
		},

		Simulation: SimulationConfig{
			Solver:   "ode23t",
			StopTime: 100,
		},

		Paths: PathsConfig{
			DataDir: "data",
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the default config file location,
// ~/.aisimogen/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".aisimogen", "config.yaml")
	}
	return filepath.Join(home, ".aisimogen", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields
// the defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides. A key in
// the environment beats the key in the file. When the file pins no
// provider, the first key found selects one; when it does, only that
// provider's key is honored.
func (c *Config) applyEnvOverrides() {
	for _, pe := range []struct {
		envVar   string
		provider string
	}{
		{"OPENAI_API_KEY", "openai"},
		{"ANTHROPIC_API_KEY", "anthropic"},
		{"TOGETHER_API_KEY", "together"},
		{"GEMINI_API_KEY", "gemini"},
	} {
		key := os.Getenv(pe.envVar)
		if key == "" {
			continue
		}
		if c.LLM.Provider == "" {
			c.LLM.Provider = pe.provider
			c.LLM.APIKey = key
			break
		}
		if c.LLM.Provider == pe.provider {
			c.LLM.APIKey = key
			break
		}
	}

	if model := os.Getenv("AISIMOGEN_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if dir := os.Getenv("AISIMOGEN_DATA_DIR"); dir != "" {
		c.Paths.DataDir = dir
	}
}

// RequestTimeout returns the request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// ArtifactsDir is the root the prompt/response artifact store writes
// under.
func (c *Config) ArtifactsDir() string {
	return c.Paths.DataDir
}

// SystemJSONDir is where generated system documents are saved.
func (c *Config) SystemJSONDir() string {
	return filepath.Join(c.Paths.DataDir, "json", "output")
}

// ScriptDir is where generated simulation scripts are saved.
func (c *Config) ScriptDir() string {
	return filepath.Join(c.Paths.DataDir, "simscape", "output")
}

// HistoryDir is where the generation history database lives.
func (c *Config) HistoryDir() string {
	return c.Paths.DataDir
}

// ValidProviders lists all supported providers.
var ValidProviders = []string{"openai", "anthropic", "together", "gemini", "offline"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.LLM.Provider != "" {
		validProvider := false
		for _, p := range ValidProviders {
			if c.LLM.Provider == p {
				validProvider = true
				break
			}
		}
		if !validProvider {
			return fmt.Errorf("invalid provider: %s (valid: %v)", c.LLM.Provider, ValidProviders)
		}
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("temperature %g out of range [0, 2]", c.LLM.Temperature)
	}
	if c.Generation.MaxCorrections < 0 {
		return fmt.Errorf("max_corrections must not be negative")
	}
	if c.Generation.Candidates < 1 {
		return fmt.Errorf("candidates must be at least 1")
	}
	if c.Simulation.StopTime <= 0 {
		return fmt.Errorf("stop_time must be positive")
	}
	if c.Paths.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}

	return nil
}
