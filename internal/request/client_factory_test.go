package request

import (
	"errors"
	"strings"
	"testing"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, p := range providerEnvVars {
		t.Setenv(p.envVar, "")
	}
}

func TestDetectProvider_Priority(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-key")

	config, err := DetectProvider()
	if err != nil {
		t.Fatalf("DetectProvider failed: %v", err)
	}
	if config.Provider != ProviderOpenAI {
		t.Errorf("Expected OpenAI to win, got %s", config.Provider)
	}
	if config.APIKey != "openai-key" {
		t.Errorf("Unexpected API key: %s", config.APIKey)
	}
}

func TestDetectProvider_FallsThroughChain(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	config, err := DetectProvider()
	if err != nil {
		t.Fatalf("DetectProvider failed: %v", err)
	}
	if config.Provider != ProviderGemini {
		t.Errorf("Expected Gemini, got %s", config.Provider)
	}
}

func TestDetectProvider_NoKeys(t *testing.T) {
	clearProviderEnv(t)

	_, err := DetectProvider()
	if err == nil {
		t.Fatal("Expected error with no keys set")
	}
	if !strings.Contains(err.Error(), "no API key found") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestAPIKeyForProvider(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("TOGETHER_API_KEY", "together-key")

	key, err := APIKeyForProvider(ProviderTogether)
	if err != nil {
		t.Fatalf("APIKeyForProvider failed: %v", err)
	}
	if key != "together-key" {
		t.Errorf("Unexpected key: %s", key)
	}

	if _, err := APIKeyForProvider(ProviderAnthropic); !errors.Is(err, ErrAPIKeyMissing) {
		t.Errorf("Expected ErrAPIKeyMissing, got %v", err)
	}

	if key, err := APIKeyForProvider(ProviderOffline); err != nil || key != "" {
		t.Errorf("Expected no key for offline provider, got %q, %v", key, err)
	}
}

func TestProviderForModel(t *testing.T) {
	tests := []struct {
		model string
		want  Provider
	}{
		{ModelGPT35Turbo, ProviderOpenAI},
		{ModelClaude3Opus, ProviderAnthropic},
		{ModelClaude3Haiku, ProviderAnthropic},
		{ModelGemini15Pro, ProviderGemini},
		{ModelLlama270B, ProviderTogether},
		{ModelMixtral8x7B, ProviderTogether},
		{ModelWizardLM13B, ProviderTogether},
		{OfflineModel, ProviderOffline},
		{"", ProviderOffline},
	}
	for _, tt := range tests {
		got, err := ProviderForModel(tt.model)
		if err != nil {
			t.Fatalf("ProviderForModel(%q) failed: %v", tt.model, err)
		}
		if got != tt.want {
			t.Errorf("ProviderForModel(%q) = %s, want %s", tt.model, got, tt.want)
		}
	}

	if _, err := ProviderForModel("made-up-model"); err == nil {
		t.Error("Expected error for unknown model")
	}
}

func TestNewClientFromConfig_ModelOverride(t *testing.T) {
	client, err := NewClientFromConfig(&ProviderConfig{
		Provider: ProviderOpenAI,
		APIKey:   "test-key",
		Model:    "gpt-4o",
	})
	if err != nil {
		t.Fatalf("NewClientFromConfig failed: %v", err)
	}

	openai, ok := client.(*OpenAIClient)
	if !ok {
		t.Fatalf("Expected *OpenAIClient, got %T", client)
	}
	if openai.GetModel() != "gpt-4o" {
		t.Errorf("Expected model override gpt-4o, got %s", openai.GetModel())
	}
}

func TestNewClientFromConfig_Offline(t *testing.T) {
	client, err := NewClientFromConfig(&ProviderConfig{Provider: ProviderOffline})
	if err != nil {
		t.Fatalf("NewClientFromConfig failed: %v", err)
	}
	if _, ok := client.(*OfflineClient); !ok {
		t.Fatalf("Expected *OfflineClient, got %T", client)
	}
}

func TestNewClientFromConfig_UnknownProvider(t *testing.T) {
	_, err := NewClientFromConfig(&ProviderConfig{Provider: Provider("smoke-signals")})
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Fatalf("Expected unknown provider error, got %v", err)
	}
}

func TestNewGeminiClientWithConfig_MissingKey(t *testing.T) {
	_, err := NewGeminiClientWithConfig(GeminiConfig{})
	if !errors.Is(err, ErrAPIKeyMissing) {
		t.Fatalf("Expected ErrAPIKeyMissing, got %v", err)
	}
}
