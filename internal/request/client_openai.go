package request

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// OpenAIClient implements Client for the OpenAI chat completions API.
type OpenAIClient struct {
	chatAPI
}

// DefaultOpenAIConfig returns sensible defaults.
func DefaultOpenAIConfig(apiKey string) OpenAIConfig {
	return OpenAIConfig{
		APIKey:      apiKey,
		BaseURL:     "https://api.openai.com/v1",
		Model:       ModelGPT35Turbo,
		Timeout:     2 * time.Minute,
		Temperature: 1.0,
		MaxRetries:  defaultMaxRetries,
	}
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return NewOpenAIClientWithConfig(DefaultOpenAIConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a new OpenAI client with custom config.
func NewOpenAIClientWithConfig(config OpenAIConfig) *OpenAIClient {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = defaultMaxRetries
	}
	return &OpenAIClient{chatAPI{
		name:        "openai",
		apiKey:      config.APIKey,
		baseURL:     config.BaseURL,
		model:       config.Model,
		temperature: config.Temperature,
		maxRetries:  config.MaxRetries,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		retryBackoff: time.Second,
		log:          log,
	}}
}

// Complete sends a prompt and returns the completion.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (ResponseData, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem sends a prompt with a system message.
func (c *OpenAIClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (ResponseData, error) {
	return c.completeWithSystem(ctx, systemPrompt, userPrompt)
}
