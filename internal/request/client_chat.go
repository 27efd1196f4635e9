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

// defaultMaxRetries bounds the retry loop on rate limits and
// transient transport errors.
const defaultMaxRetries = 3

// chatAPI is the transport shared by OpenAI-compatible providers.
// OpenAI and Together AI speak the same chat completions protocol and
// differ only in base URL and model catalogue, so both clients
// delegate to one core.
type chatAPI struct {
	name         string
	apiKey       string
	baseURL      string
	model        string
	temperature  float64
	maxRetries   int
	httpClient   *http.Client
	retryBackoff time.Duration
	log          *zap.Logger
	mu           sync.Mutex
	lastRequest  time.Time
}

// SetModel changes the model used for completions.
func (a *chatAPI) SetModel(model string) {
	a.model = model
}

// GetModel returns the current model.
func (a *chatAPI) GetModel() string {
	return a.model
}

func (a *chatAPI) completeWithSystem(ctx context.Context, systemPrompt, userPrompt string) (ResponseData, error) {
	// Auto-apply timeout if context has no deadline.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.httpClient.Timeout)
		defer cancel()
	}

	if a.apiKey == "" {
		return ResponseData{}, ErrAPIKeyMissing
	}

	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = defaultSystemPrompt
	}

	startTime := time.Now()
	a.log.Debug("sending chat completion",
		zap.String("provider", a.name),
		zap.String("model", a.model),
		zap.Int("system_len", len(systemPrompt)),
		zap.Int("user_len", len(userPrompt)))

	// Rate limiting
	a.mu.Lock()
	elapsed := time.Since(a.lastRequest)
	if elapsed < 100*time.Millisecond {
		time.Sleep(100*time.Millisecond - elapsed)
	}
	a.lastRequest = time.Now()
	a.mu.Unlock()

	reqBody := ChatRequest{
		Model: a.model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: clampTemperature(a.temperature),
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return ResponseData{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Retry loop for rate limits and transient errors
	var lastErr error

	for i := 0; i <= a.maxRetries; i++ {
		if i > 0 {
			time.Sleep(time.Duration(1<<uint(i-1)) * a.retryBackoff)
		}

		req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/chat/completions", bytes.NewReader(jsonData))
		if err != nil {
			return ResponseData{}, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+a.apiKey)

		resp, err := a.httpClient.Do(req)
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

		var chatResp ChatResponse
		if err := json.Unmarshal(body, &chatResp); err != nil {
			return ResponseData{}, fmt.Errorf("failed to parse response: %w", err)
		}

		if chatResp.Error != nil {
			return ResponseData{}, fmt.Errorf("API error: %s", chatResp.Error.Message)
		}

		if len(chatResp.Choices) == 0 {
			return ResponseData{}, fmt.Errorf("no completion returned")
		}

		result := ResponseData{
			Text:         strings.TrimSpace(chatResp.Choices[0].Message.Content),
			Model:        a.model,
			InputTokens:  chatResp.Usage.PromptTokens,
			OutputTokens: chatResp.Usage.CompletionTokens,
			Duration:     time.Since(startTime),
		}

		a.log.Debug("chat completion received",
			zap.String("provider", a.name),
			zap.String("model", a.model),
			zap.Int("input_tokens", result.InputTokens),
			zap.Int("output_tokens", result.OutputTokens),
			zap.Duration("duration", result.Duration))
		return result, nil
	}

	return ResponseData{}, fmt.Errorf("max retries exceeded: %w", lastErr)
}
