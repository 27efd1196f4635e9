package request

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// TogetherClient implements Client for the Together AI API, which
// serves the open-weight models behind an OpenAI-compatible endpoint.
type TogetherClient struct {
	chatAPI
}

// DefaultTogetherConfig returns sensible defaults.
func DefaultTogetherConfig(apiKey string) TogetherConfig {
	return TogetherConfig{
		APIKey:      apiKey,
		BaseURL:     "https://api.together.xyz/v1",
		Model:       ModelMixtral8x7B,
		Timeout:     2 * time.Minute,
		Temperature: 1.0,
		MaxRetries:  defaultMaxRetries,
	}
}

// NewTogetherClient creates a new Together AI client.
func NewTogetherClient(apiKey string) *TogetherClient {
	return NewTogetherClientWithConfig(DefaultTogetherConfig(apiKey))
}

// NewTogetherClientWithConfig creates a new Together AI client with custom config.
func NewTogetherClientWithConfig(config TogetherConfig) *TogetherClient {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = defaultMaxRetries
	}
	return &TogetherClient{chatAPI{
		name:        "together",
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
func (c *TogetherClient) Complete(ctx context.Context, prompt string) (ResponseData, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem sends a prompt with a system message.
func (c *TogetherClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (ResponseData, error) {
	return c.completeWithSystem(ctx, systemPrompt, userPrompt)
}
