package config

import (
	"path/filepath"
	"testing"
	"time"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("TOGETHER_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("AISIMOGEN_MODEL", "")
	t.Setenv("AISIMOGEN_DATA_DIR", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.LLM.Provider != "" {
		t.Errorf("expected empty Provider, got %s", cfg.LLM.Provider)
	}
	if cfg.LLM.Temperature != 1.0 {
		t.Errorf("expected Temperature=1.0, got %g", cfg.LLM.Temperature)
	}
	if cfg.Generation.MaxCorrections != 3 {
		t.Errorf("expected MaxCorrections=3, got %d", cfg.Generation.MaxCorrections)
	}
	if cfg.Simulation.Solver != "ode23t" {
		t.Errorf("expected Solver=ode23t, got %s", cfg.Simulation.Solver)
	}
	if cfg.Simulation.StopTime != 100 {
		t.Errorf("expected StopTime=100, got %d", cfg.Simulation.StopTime)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearProviderEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.LLM.Provider = "anthropic"
	cfg.LLM.APIKey = "sk-test"
	cfg.Generation.Candidates = 4

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.LLM.Provider != "anthropic" {
		t.Errorf("expected Provider=anthropic, got %s", loaded.LLM.Provider)
	}
	if loaded.LLM.APIKey != "sk-test" {
		t.Errorf("expected APIKey=sk-test, got %s", loaded.LLM.APIKey)
	}
	if loaded.Generation.Candidates != 4 {
		t.Errorf("expected Candidates=4, got %d", loaded.Generation.Candidates)
	}
}

func TestConfig_LoadMissingFileReturnsDefaults(t *testing.T) {
	clearProviderEnv(t)

	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Paths.DataDir != "data" {
		t.Errorf("expected DataDir=data, got %s", cfg.Paths.DataDir)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("TOGETHER_API_KEY", "env-together-key")
	t.Setenv("AISIMOGEN_DATA_DIR", "/tmp/aisimogen-data")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.LLM.Provider != "together" {
		t.Errorf("expected Provider=together, got %s", cfg.LLM.Provider)
	}
	if cfg.LLM.APIKey != "env-together-key" {
		t.Errorf("expected APIKey=env-together-key, got %s", cfg.LLM.APIKey)
	}
	if cfg.Paths.DataDir != "/tmp/aisimogen-data" {
		t.Errorf("expected DataDir=/tmp/aisimogen-data, got %s", cfg.Paths.DataDir)
	}
}

func TestConfig_EnvOverridesHonorPinnedProvider(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "env-openai-key")
	t.Setenv("GEMINI_API_KEY", "env-gemini-key")

	cfg := DefaultConfig()
	cfg.LLM.Provider = "gemini"
	cfg.applyEnvOverrides()

	if cfg.LLM.Provider != "gemini" {
		t.Errorf("expected Provider=gemini, got %s", cfg.LLM.Provider)
	}
	if cfg.LLM.APIKey != "env-gemini-key" {
		t.Errorf("expected APIKey=env-gemini-key, got %s", cfg.LLM.APIKey)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid defaults, got error: %v", err)
	}

	cfg.LLM.Provider = "smoke-signals"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid provider")
	}

	cfg = DefaultConfig()
	cfg.LLM.Temperature = 2.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for out-of-range temperature")
	}

	cfg = DefaultConfig()
	cfg.Generation.Candidates = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero candidates")
	}

	cfg = DefaultConfig()
	cfg.Simulation.StopTime = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero stop time")
	}
}

func TestConfig_Helpers(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.RequestTimeout() != 120*time.Second {
		t.Errorf("RequestTimeout=%v, want 120s", cfg.RequestTimeout())
	}

	cfg.LLM.Timeout = "not a duration"
	if cfg.RequestTimeout() != 120*time.Second {
		t.Error("RequestTimeout should fall back to 120s on a bad value")
	}

	cfg.Paths.DataDir = "out"
	if got, want := cfg.SystemJSONDir(), filepath.Join("out", "json", "output"); got != want {
		t.Errorf("SystemJSONDir=%q, want %q", got, want)
	}
	if got, want := cfg.ScriptDir(), filepath.Join("out", "simscape", "output"); got != want {
		t.Errorf("ScriptDir=%q, want %q", got, want)
	}
	if cfg.ArtifactsDir() != "out" {
		t.Errorf("ArtifactsDir=%q, want out", cfg.ArtifactsDir())
	}
}
