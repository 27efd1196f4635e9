package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// anthropicMaxTokens caps the completion length. The circuit
// documents the models emit fit comfortably below this.
const anthropicMaxTokens = 2048

// AnthropicClient implements Client for the Anthropic messages API.
type AnthropicClient struct {
	apiKey       string
	baseURL      string
	model        string
	temperature  float64
	maxTokens    int
	maxRetries   int
	httpClient   *http.Client
	retryBackoff time.Duration
	log          *zap.Logger
	mu           sync.Mutex
	lastRequest  time.Time
}

// DefaultAnthropicConfig returns sensible defaults.
func DefaultAnthropicConfig(apiKey string) AnthropicConfig {
	return AnthropicConfig{
		APIKey:      apiKey,
		BaseURL:     "https://api.anthropic.com/v1",
		Model:       ModelClaude3Haiku,
		Timeout:     2 * time.Minute,
		Temperature: 1.0,
		MaxTokens:   anthropicMaxTokens,
		MaxRetries:  defaultMaxRetries,
	}
}

// NewAnthropicClient creates a new Anthropic client.
func NewAnthropicClient(apiKey string) *AnthropicClient {
	return NewAnthropicClientWithConfig(DefaultAnthropicConfig(apiKey))
}

// NewAnthropicClientWithConfig creates a new Anthropic client with custom config.
func NewAnthropicClientWithConfig(config AnthropicConfig) *AnthropicClient {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicMaxTokens
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = defaultMaxRetries
	}
	return &AnthropicClient{
		apiKey:      config.APIKey,
		baseURL:     config.BaseURL,
		model:       config.Model,
		temperature: config.Temperature,
		maxTokens:   maxTokens,
		maxRetries:  config.MaxRetries,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		retryBackoff: time.Second,
		log:          log,
	}
}

// SetModel changes the model used for completions.
func (c *AnthropicClient) SetModel(model string) {
	c.model = model
}

// GetModel returns the current model.
func (c *AnthropicClient) GetModel() string {
	return c.model
}

// Complete sends a prompt and returns the completion.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (ResponseData, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem sends a prompt with a system message.
func (c *AnthropicClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (ResponseData, error) {
	// Auto-apply timeout if context has no deadline.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	if c.apiKey == "" {
		return ResponseData{}, ErrAPIKeyMissing
	}

	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = defaultSystemPrompt
	}

	startTime := time.Now()
	c.log.Debug("sending chat completion",
		zap.String("provider", "anthropic"),
		zap.String("model", c.model),
		zap.Int("system_len", len(systemPrompt)),
		zap.Int("user_len", len(userPrompt)))

	// Rate limiting
	c.mu.Lock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < 100*time.Millisecond {
		time.Sleep(100*time.Millisecond - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	reqBody := AnthropicRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    systemPrompt,
		Messages: []AnthropicMessage{
			{Role: "user", Content: userPrompt},
		},
		Temperature: clampTemperature(c.temperature),
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return ResponseData{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Retry loop for rate limits and transient errors
	var lastErr error

	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			time.Sleep(time.Duration(1<<uint(i-1)) * c.retryBackoff)
		}

		req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/messages", bytes.NewReader(jsonData))
		if err != nil {
			return ResponseData{}, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("anthropic-version", "2023-06-01")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limit exceeded (429)")
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return ResponseData{}, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}

		var anthropicResp AnthropicResponse
		if err := json.Unmarshal(body, &anthropicResp); err != nil {
			return ResponseData{}, fmt.Errorf("failed to parse response: %w", err)
		}

		if anthropicResp.Error != nil {
			return ResponseData{}, fmt.Errorf("API error: %s", anthropicResp.Error.Message)
		}

		if len(anthropicResp.Content) == 0 {
			return ResponseData{}, fmt.Errorf("no completion returned")
		}

		var text strings.Builder
		for _, block := range anthropicResp.Content {
			if block.Type == "text" {
				text.WriteString(block.Text)
			}
		}

		result := ResponseData{
			Text:         strings.TrimSpace(text.String()),
			Model:        c.model,
			InputTokens:  anthropicResp.Usage.InputTokens,
			OutputTokens: anthropicResp.Usage.OutputTokens,
			Duration:     time.Since(startTime),
		}

		c.log.Debug("chat completion received",
			zap.String("provider", "anthropic"),
			zap.String("model", c.model),
			zap.Int("input_tokens", result.InputTokens),
			zap.Int("output_tokens", result.OutputTokens),
			zap.Duration("duration", result.Duration))
		return result, nil
	}

	return ResponseData{}, fmt.Errorf("max retries exceeded: %w", lastErr)
}
