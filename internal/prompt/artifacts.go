package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Artifacts keeps each model exchange on disk for inspection. Raw
// responses land under responses/api_call_<timestamp>/ and the most
// recent prompt overwrites prompts/last_generated_prompt.txt, so a
// failed run can always be replayed by hand.
type Artifacts struct {
	root string
	log  *zap.Logger
	now  func() time.Time
}

// NewArtifacts creates an artifact store rooted at a data directory.
func NewArtifacts(root string, log *zap.Logger) *Artifacts {
	if log == nil {
		log = zap.NewNop()
	}
	return &Artifacts{root: root, log: log, now: time.Now}
}

// SaveExchange writes the raw response and the prompt that produced
// it, and returns the directory holding the response. Exchanges
// within the same minute share a directory and overwrite each other,
// which keeps correction retries in one place.
func (a *Artifacts) SaveExchange(prompt, response string) (string, error) {
	stamp := a.now().Format("20060102_1504")

	dir := filepath.Join(a.root, "responses", "api_call_"+stamp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create response directory: %w", err)
	}
	responsePath := filepath.Join(dir, "response_"+stamp+".txt")
	if err := os.WriteFile(responsePath, []byte(response), 0644); err != nil {
		return "", fmt.Errorf("failed to write response: %w", err)
	}

	promptDir := filepath.Join(a.root, "prompts")
	if err := os.MkdirAll(promptDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create prompt directory: %w", err)
	}
	promptPath := filepath.Join(promptDir, "last_generated_prompt.txt")
	if err := os.WriteFile(promptPath, []byte(prompt), 0644); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	a.log.Debug("exchange saved",
		zap.String("dir", dir),
		zap.Int("prompt_len", len(prompt)),
		zap.Int("response_len", len(response)))
	return dir, nil
}

// SaveDocument writes the JSON document extracted from a response
// beside the raw text it came from. dir is the directory SaveExchange
// returned.
func (a *Artifacts) SaveDocument(dir string, doc []byte) error {
	stamp := strings.TrimPrefix(filepath.Base(dir), "api_call_")
	path := filepath.Join(dir, "response_"+stamp+".json")
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
