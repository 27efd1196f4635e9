// Package interpreter turns raw model responses into validated
// abstract circuits. Responses rarely arrive as bare JSON; the models
// wrap the document in prose or markdown fences, so interpretation
// starts by cutting the first balanced JSON object out of the text,
// then validates it against the circuit schema before decoding.
package interpreter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/abstract"
)

// ErrSchema marks responses whose JSON decodes but does not describe
// a circuit document. Schema failures are not worth a correction
// prompt; the model ignored the format instructions entirely.
var ErrSchema = errors.New("response JSON does not match the circuit schema")

// Interpreter validates and decodes circuit documents.
type Interpreter struct {
	schema *jsonschema.Schema
	log    *zap.Logger
}

// New compiles the embedded circuit schema.
func New(log *zap.Logger) (*Interpreter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	schema, err := jsonschema.CompileString("abstract_system_model_schema.json", abstract.SchemaJSON)
	if err != nil {
		return nil, fmt.Errorf("interpreter: compile schema: %w", err)
	}
	return &Interpreter{schema: schema, log: log}, nil
}

// ExtractJSON returns the first balanced top-level JSON object in a
// response, skipping any prose or markdown fencing around it. Brace
// counting ignores braces inside JSON strings.
func ExtractJSON(response string) (string, error) {
	start := strings.IndexByte(response, '{')
	if start < 0 {
		return "", fmt.Errorf("interpreter: response contains no JSON object")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(response); i++ {
		c := response[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("interpreter: response contains an unterminated JSON object")
}

// Interpret extracts the circuit document from a raw response,
// validates it against the schema and decodes it. Once extraction
// succeeds the document is returned even when validation or decoding
// fails, so callers can persist it and quote it in correction
// prompts. Decode failures surface abstract.ComponentError and
// abstract.ConnectionError unchanged.
func (in *Interpreter) Interpret(response string) ([]byte, *abstract.System, error) {
	text, err := ExtractJSON(response)
	if err != nil {
		return nil, nil, err
	}
	doc := []byte(text)

	var instance interface{}
	if err := json.Unmarshal(doc, &instance); err != nil {
		return doc, nil, fmt.Errorf("interpreter: decode response: %w", err)
	}

	if err := in.schema.Validate(instance); err != nil {
		in.log.Debug("schema validation failed", zap.Error(err))
		return doc, nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	sys, err := abstract.FromJSON(doc)
	if err != nil {
		return doc, nil, err
	}

	in.log.Debug("response interpreted",
		zap.Int("components", len(sys.Components)),
		zap.Int("connections", len(sys.Connections)))
	return doc, sys, nil
}
