package request

import (
	"context"
	"time"
)

// OfflineModel is the model name the offline client reports. It has
// no price table entry, so offline runs cost nothing.
const OfflineModel = "offline-fixture"

// offlineFixtureJSON describes a battery driving a lamp through a
// switch, with port-qualified connection endpoints the way the models
// tend to write them.
const offlineFixtureJSON = `{
    "components": [
        {
            "name": "Battery_0",
            "ports": ["positive", "negative"]
        },
        {
            "name": "SPSTSwitch_0",
            "ports": ["in", "out"]
        },
        {
            "name": "Lamp_0",
            "ports": ["in", "out"]
        }
    ],
    "connections": [
        {"from": "Battery_0_positive", "to": "SPSTSwitch_0_in"},
        {"from": "SPSTSwitch_0_out", "to": "Lamp_0_in"},
        {"from": "Lamp_0_out", "to": "Battery_0_negative"}
    ]
}`

// offlineFixture wraps the document in prose and a fenced code block
// so the interpreter's extraction path is exercised end to end.
const offlineFixture = "Here is the abstract model of the requested circuit:\n\n" +
	"```json\n" + offlineFixtureJSON + "\n```\n\n" +
	"The battery drives the lamp through the closed switch."

// OfflineClient implements Client without talking to any provider.
// It answers every prompt with a fixed battery-switch-lamp circuit,
// for tests and for running the pipeline without an API key.
type OfflineClient struct {
	model string
}

// NewOfflineClient creates a new offline client.
func NewOfflineClient() *OfflineClient {
	return &OfflineClient{model: OfflineModel}
}

// SetModel changes the model the canned responses report.
func (c *OfflineClient) SetModel(model string) {
	c.model = model
}

// GetModel returns the current model.
func (c *OfflineClient) GetModel() string {
	return c.model
}

// Complete sends a prompt and returns the completion.
func (c *OfflineClient) Complete(ctx context.Context, prompt string) (ResponseData, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem returns the canned circuit regardless of prompt.
// Token counts are rough length estimates so cost and history
// bookkeeping stay plausible.
func (c *OfflineClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (ResponseData, error) {
	if err := ctx.Err(); err != nil {
		return ResponseData{}, err
	}
	startTime := time.Now()
	return ResponseData{
		Text:         offlineFixture,
		Model:        c.model,
		InputTokens:  (len(systemPrompt) + len(userPrompt)) / 4,
		OutputTokens: len(offlineFixture) / 4,
		Duration:     time.Since(startTime),
	}, nil
}
