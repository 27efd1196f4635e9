package request

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiClient implements Client for the Google Gemini API via the
// GenAI SDK. The SDK carries its own retry and transport handling, so
// unlike the HTTP clients there is no rate limiting loop here.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float64
	log         *zap.Logger
}

// DefaultGeminiConfig returns sensible defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:      apiKey,
		Model:       ModelGemini15Pro,
		Temperature: 1.0,
	}
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	return NewGeminiClientWithConfig(DefaultGeminiConfig(apiKey))
}

// NewGeminiClientWithConfig creates a new Gemini client with custom config.
func NewGeminiClientWithConfig(config GeminiConfig) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: config.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		model:       config.Model,
		temperature: config.Temperature,
		log:         log,
	}, nil
}

// SetModel changes the model used for completions.
func (c *GeminiClient) SetModel(model string) {
	c.model = model
}

// GetModel returns the current model.
func (c *GeminiClient) GetModel() string {
	return c.model
}

// Complete sends a prompt and returns the completion.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (ResponseData, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem sends a prompt with a system message.
func (c *GeminiClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (ResponseData, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = defaultSystemPrompt
	}

	startTime := time.Now()
	c.log.Debug("sending chat completion",
		zap.String("provider", "gemini"),
		zap.String("model", c.model),
		zap.Int("system_len", len(systemPrompt)),
		zap.Int("user_len", len(userPrompt)))

	contents := []*genai.Content{
		genai.NewContentFromText(userPrompt, genai.RoleUser),
	}
	generateConfig := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(float32(clampTemperature(c.temperature))),
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, generateConfig)
	if err != nil {
		return ResponseData{}, fmt.Errorf("GenAI completion failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return ResponseData{}, fmt.Errorf("no completion returned")
	}

	data := ResponseData{
		Text:     text,
		Model:    c.model,
		Duration: time.Since(startTime),
	}
	if usage := result.UsageMetadata; usage != nil {
		data.InputTokens = int(usage.PromptTokenCount)
		data.OutputTokens = int(usage.CandidatesTokenCount)
	}

	c.log.Debug("chat completion received",
		zap.String("provider", "gemini"),
		zap.String("model", c.model),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
		zap.Duration("duration", data.Duration))
	return data, nil
}
