package request

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ProviderConfig holds the resolved provider and API key. Zero-value
// Model, Temperature, Timeout and MaxRetries keep the provider
// defaults.
type ProviderConfig struct {
	Provider    Provider
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
	Logger      *zap.Logger
}

// providerEnvVars maps each provider to the environment variable
// holding its API key, in detection priority order.
var providerEnvVars = []struct {
	envVar   string
	provider Provider
}{
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"TOGETHER_API_KEY", ProviderTogether},
	{"GEMINI_API_KEY", ProviderGemini},
}

// DetectProvider picks a provider from the environment.
// Priority: OPENAI_API_KEY > ANTHROPIC_API_KEY > TOGETHER_API_KEY >
// GEMINI_API_KEY.
func DetectProvider() (*ProviderConfig, error) {
	for _, p := range providerEnvVars {
		if key := os.Getenv(p.envVar); key != "" {
			return &ProviderConfig{
				Provider: p.provider,
				APIKey:   key,
			}, nil
		}
	}
	return nil, fmt.Errorf("no API key found; set one of: OPENAI_API_KEY, ANTHROPIC_API_KEY, TOGETHER_API_KEY, GEMINI_API_KEY")
}

// APIKeyForProvider reads the environment variable for an explicitly
// chosen provider. The offline provider needs no key.
func APIKeyForProvider(provider Provider) (string, error) {
	if provider == ProviderOffline {
		return "", nil
	}
	for _, p := range providerEnvVars {
		if p.provider == provider {
			if key := os.Getenv(p.envVar); key != "" {
				return key, nil
			}
			return "", fmt.Errorf("%w: set %s", ErrAPIKeyMissing, p.envVar)
		}
	}
	return "", fmt.Errorf("unknown provider: %s", provider)
}

// ProviderForModel maps a model name to the provider serving it.
func ProviderForModel(model string) (Provider, error) {
	switch {
	case strings.HasPrefix(model, "gpt-"):
		return ProviderOpenAI, nil
	case strings.HasPrefix(model, "claude-"):
		return ProviderAnthropic, nil
	case strings.HasPrefix(model, "gemini-"):
		return ProviderGemini, nil
	case model == ModelLlama270B, model == ModelMixtral8x7B, model == ModelWizardLM13B:
		return ProviderTogether, nil
	case model == "" || model == OfflineModel:
		return ProviderOffline, nil
	}
	return "", fmt.Errorf("no provider serves model %s", model)
}

// NewClientFromEnv creates a client based on environment variables.
func NewClientFromEnv() (Client, error) {
	config, err := DetectProvider()
	if err != nil {
		return nil, err
	}
	return NewClientFromConfig(config)
}

// NewClientFromConfig creates a client from a provider config.
func NewClientFromConfig(config *ProviderConfig) (Client, error) {
	switch config.Provider {
	case ProviderOpenAI:
		cfg := DefaultOpenAIConfig(config.APIKey)
		if config.Model != "" {
			cfg.Model = config.Model
		}
		if config.Temperature > 0 {
			cfg.Temperature = config.Temperature
		}
		if config.Timeout > 0 {
			cfg.Timeout = config.Timeout
		}
		if config.MaxRetries > 0 {
			cfg.MaxRetries = config.MaxRetries
		}
		cfg.Logger = config.Logger
		return NewOpenAIClientWithConfig(cfg), nil

	case ProviderAnthropic:
		cfg := DefaultAnthropicConfig(config.APIKey)
		if config.Model != "" {
			cfg.Model = config.Model
		}
		if config.Temperature > 0 {
			cfg.Temperature = config.Temperature
		}
		if config.Timeout > 0 {
			cfg.Timeout = config.Timeout
		}
		if config.MaxRetries > 0 {
			cfg.MaxRetries = config.MaxRetries
		}
		cfg.Logger = config.Logger
		return NewAnthropicClientWithConfig(cfg), nil

	case ProviderTogether:
		cfg := DefaultTogetherConfig(config.APIKey)
		if config.Model != "" {
			cfg.Model = config.Model
		}
		if config.Temperature > 0 {
			cfg.Temperature = config.Temperature
		}
		if config.Timeout > 0 {
			cfg.Timeout = config.Timeout
		}
		if config.MaxRetries > 0 {
			cfg.MaxRetries = config.MaxRetries
		}
		cfg.Logger = config.Logger
		return NewTogetherClientWithConfig(cfg), nil

	case ProviderGemini:
		cfg := DefaultGeminiConfig(config.APIKey)
		if config.Model != "" {
			cfg.Model = config.Model
		}
		if config.Temperature > 0 {
			cfg.Temperature = config.Temperature
		}
		cfg.Logger = config.Logger
		return NewGeminiClientWithConfig(cfg)

	case ProviderOffline:
		return NewOfflineClient(), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", config.Provider)
	}
}
