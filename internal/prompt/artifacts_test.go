package prompt

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveExchange(t *testing.T) {
	root := t.TempDir()
	a := NewArtifacts(root, nil)
	a.now = func() time.Time { return time.Date(2024, 4, 7, 15, 4, 0, 0, time.UTC) }

	dir, err := a.SaveExchange("the prompt", "the response")
	if err != nil {
		t.Fatalf("SaveExchange failed: %v", err)
	}
	if dir != filepath.Join(root, "responses", "api_call_20240407_1504") {
		t.Errorf("Unexpected response directory: %s", dir)
	}

	response, err := os.ReadFile(filepath.Join(dir, "response_20240407_1504.txt"))
	if err != nil {
		t.Fatalf("Response file missing: %v", err)
	}
	if string(response) != "the response" {
		t.Errorf("Unexpected response content: %q", response)
	}

	prompt, err := os.ReadFile(filepath.Join(root, "prompts", "last_generated_prompt.txt"))
	if err != nil {
		t.Fatalf("Prompt file missing: %v", err)
	}
	if string(prompt) != "the prompt" {
		t.Errorf("Unexpected prompt content: %q", prompt)
	}
}

func TestSaveExchangeOverwritesLastPrompt(t *testing.T) {
	root := t.TempDir()
	a := NewArtifacts(root, nil)

	if _, err := a.SaveExchange("first", "r1"); err != nil {
		t.Fatalf("SaveExchange failed: %v", err)
	}
	if _, err := a.SaveExchange("second", "r2"); err != nil {
		t.Fatalf("SaveExchange failed: %v", err)
	}

	prompt, err := os.ReadFile(filepath.Join(root, "prompts", "last_generated_prompt.txt"))
	if err != nil {
		t.Fatalf("Prompt file missing: %v", err)
	}
	if string(prompt) != "second" {
		t.Errorf("Expected the newest prompt, got %q", prompt)
	}
}

func TestSaveDocument(t *testing.T) {
	root := t.TempDir()
	a := NewArtifacts(root, nil)
	a.now = func() time.Time { return time.Date(2024, 4, 7, 15, 4, 0, 0, time.UTC) }

	dir, err := a.SaveExchange("p", "r")
	if err != nil {
		t.Fatalf("SaveExchange failed: %v", err)
	}
	if err := a.SaveDocument(dir, []byte(`{"components": []}`)); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	doc, err := os.ReadFile(filepath.Join(dir, "response_20240407_1504.json"))
	if err != nil {
		t.Fatalf("Document file missing: %v", err)
	}
	if string(doc) != `{"components": []}` {
		t.Errorf("Unexpected document content: %q", doc)
	}
}
