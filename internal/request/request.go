// Package request sends prompts to large language model providers and
// returns the raw completions with their token and cost bookkeeping.
// Four backends are supported: OpenAI, Anthropic, Together AI (an
// OpenAI-compatible endpoint serving the open-weight models) and
// Google Gemini, plus an offline fixture for tests and air-gapped
// runs.
package request

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// defaultSystemPrompt frames every completion request unless the
// caller supplies its own system message.
const defaultSystemPrompt = "You are an electrical engineer."

// ErrAPIKeyMissing is returned when a client is asked to complete a
// prompt without a configured key.
var ErrAPIKeyMissing = errors.New("API key not configured")

// ErrUnknownModel is returned by Cost for models without a price
// table entry.
var ErrUnknownModel = errors.New("no price per token defined")

// Model names the providers serve.
const (
	ModelGPT35Turbo    = "gpt-3.5-turbo-0125"
	ModelClaude3Opus   = "claude-3-opus-20240229"
	ModelClaude3Sonnet = "claude-3-sonnet-20240229"
	ModelClaude3Haiku  = "claude-3-haiku-20240229"
	ModelLlama270B     = "meta-llama/Llama-2-70b-chat-hf"
	ModelMixtral8x7B   = "mistralai/Mixtral-8x7B-Instruct-v0.1"
	ModelWizardLM13B   = "WizardLM/WizardLM-13B-V1.2"
	ModelGemini15Pro   = "gemini-1.5-pro"
)

type tokenPrice struct {
	input  float64
	output float64
}

// USD per token, April 2024 list prices.
var modelPricesUSDPerToken = map[string]tokenPrice{
	ModelClaude3Opus:   {input: 15.0 / 1e6, output: 75.0 / 1e6},
	ModelClaude3Sonnet: {input: 3.0 / 1e6, output: 15.0 / 1e6},
	ModelClaude3Haiku:  {input: 0.25 / 1e6, output: 1.25 / 1e6},
	ModelGPT35Turbo:    {input: 0.5 / 1e6, output: 1.5 / 1e6},
	ModelLlama270B:     {input: 0.9 / 1e6, output: 0.9 / 1e6},
	ModelMixtral8x7B:   {input: 0.6 / 1e6, output: 0.6 / 1e6},
	ModelWizardLM13B:   {input: 0.3 / 1e6, output: 0.3 / 1e6},
	ModelGemini15Pro:   {input: 3.5 / 1e6, output: 10.5 / 1e6},
}

// ResponseData is one provider answer plus its bookkeeping.
type ResponseData struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
	Duration     time.Duration
}

// Cost returns the answer's USD cost under the April 2024 price
// table.
func (r ResponseData) Cost() (float64, error) {
	prices, ok := modelPricesUSDPerToken[r.Model]
	if !ok {
		return 0, fmt.Errorf("%w for %s", ErrUnknownModel, r.Model)
	}
	return float64(r.InputTokens)*prices.input + float64(r.OutputTokens)*prices.output, nil
}

// Client is one provider connection able to answer prompts.
type Client interface {
	// Complete sends a prompt under the default system message.
	Complete(ctx context.Context, prompt string) (ResponseData, error)
	// CompleteWithSystem sends a prompt with an explicit system
	// message; an empty system falls back to the default.
	CompleteWithSystem(ctx context.Context, system, user string) (ResponseData, error)
}

// clampTemperature confines a sampling temperature to the range the
// provider APIs accept.
func clampTemperature(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 2 {
		return 2
	}
	return t
}
