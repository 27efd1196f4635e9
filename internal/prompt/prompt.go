// Package prompt builds the texts sent to the language models: the
// specification summary request, the abstract circuit request with
// its component catalog and JSON schema, and the feedback and
// autocorrection follow-ups. Builders only produce strings; sending
// them is the pipeline's job.
package prompt

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/abstract"
)

// Preface frames every prompt.
const Preface = "You are an electrical engineer."

// JSONResponseInstructions tells the model the document format the
// interpreter expects.
const JSONResponseInstructions = "Only respond with a single JSON object that contains the components and " +
	"connections of the electrical circuit. Each component has a unique ID, " +
	"for example 'Resistor_0'. Each component has two or more ports, each with " +
	"a unique ID. For example 'Resistor_0_R1' for the right and 'Resistor_0_L1' " +
	"for the left port of a resistor. The components are connected via these " +
	"ports. Each connection consists of the attributes 'from' and 'to' which " +
	"have port ID as values. Each port needs to be part of a connection. Response " +
	"must only in JSON, no additional text."

const schemaInstructions = "Use the following JSON schema to validate your JSON, but don't include it in the response: "

// Generator assembles prompts around a component catalog selection
// and remembers the latest specification summary for correction
// prompts.
type Generator struct {
	mu                   sync.Mutex
	modelingInstructions string
	schema               string
	latestSummary        string
}

// NewGenerator returns a generator offering the full catalog.
func NewGenerator() *Generator {
	g := &Generator{schema: schemaInstructions + abstract.SchemaJSON}
	g.SelectKinds(nil)
	return g
}

// SelectKinds restricts the component enumeration offered to the
// model. A nil selection allows every catalog kind.
func (g *Generator) SelectKinds(kinds []abstract.Kind) {
	if kinds == nil {
		kinds = abstract.Kinds()
	}

	entries := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		if info, ok := abstract.Lookup(kind); ok {
			entries = append(entries, fmt.Sprintf("%s (%s)", kind, info.Description))
		} else {
			entries = append(entries, string(kind))
		}
	}

	g.mu.Lock()
	g.modelingInstructions = "Only the following components may be used: " + strings.Join(entries, ", ") + "."
	g.mu.Unlock()
}

// ModelingInstructions returns the current component enumeration.
func (g *Generator) ModelingInstructions() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.modelingInstructions
}

// Summary builds the prompt that condenses a free-form specification
// into a component and connection listing.
func (g *Generator) Summary(specification string) string {
	return fmt.Sprintf("%s "+
		"Keep your response as short as possible and text only. "+
		"Summarize the information from the following system specification: %s "+
		"First, identify and list every component of the described electrical circuit. "+
		"Second, identify and list all the connections between these components that are necessary "+
		"to make a functional circuit matching the specification. "+
		"Third, provide step by step instructions on how to correctly connect the components.",
		Preface, specification)
}

// CreateAbstractModel builds the main generation prompt and stores
// the description for later correction prompts.
func (g *Generator) CreateAbstractModel(systemDescription string) string {
	g.mu.Lock()
	g.latestSummary = systemDescription
	modeling := g.modelingInstructions
	schema := g.schema
	g.mu.Unlock()

	return fmt.Sprintf("%s You design electrical circuits based on a provided specification. "+
		"You will analyze and identify all the necessary components and the connections between them "+
		"from the following specification: %s "+
		"Design this electrical system and verify that this model is functional. Improve the model "+
		"until it matches the specification and there are no problems. Each electrical circuit requires "+
		"one or more power sources. Make sure all components are connected to form a complete and "+
		"uninterrupted electrical circuit with at least one power source in the path. Electricity must "+
		"be able to flow along the connections from the power source across components and back to the "+
		"power source. %s %s %s",
		Preface, systemDescription, modeling, JSONResponseInstructions, schema)
}

// ImproveByFeedback builds the prompt that revises an existing
// circuit document under free-form instructions.
func (g *Generator) ImproveByFeedback(modelJSON, feedback string) string {
	g.mu.Lock()
	schema := g.schema
	g.mu.Unlock()

	return fmt.Sprintf("%s You design electrical circuits. "+
		"The following JSON contains a model of a system with its components and connections. "+
		"%s Improve this model and the json using the following instructions: "+
		"%s %s %s",
		Preface, modelJSON, feedback, JSONResponseInstructions, schema)
}

// Autocorrect builds the prompt that repairs a rejected circuit
// document. The instruction depends on what the interpreter found: a
// ComponentError names the offending components and asks for
// nearest-name replacement, a ConnectionError names the offending
// endpoint pairs, and a nil error asks for a comparison against the
// stored specification summary. Other error types have no correction
// prompt.
func (g *Generator) Autocorrect(modelJSON string, cause error) (string, error) {
	g.mu.Lock()
	modeling := g.modelingInstructions
	schema := g.schema
	summary := g.latestSummary
	g.mu.Unlock()

	var instruction string
	switch err := cause.(type) {
	case *abstract.ComponentError:
		instruction = fmt.Sprintf("There is a problem with a component. "+
			"Correct the model based on this error message: %s "+
			"Problem with the following components: %s. "+
			"%s "+
			"Make sure that every component name excluding the '_' and number is in the "+
			"list of possible components, if not, find the closest one and replace it.",
			err.Message, strings.Join(err.Components, ", "), modeling)

	case *abstract.ConnectionError:
		instruction = fmt.Sprintf("There is a problem with a connection. "+
			"Correct the model based on this error message: %s. "+
			"Problem with the following connections: %s",
			err.Message, strings.Join(err.Connections, ", "))

	case nil:
		instruction = fmt.Sprintf("Compare this model to these specifications: "+
			"%s "+
			"Identify any differences. Next, correct these differences until the model "+
			"matches these specifications. Add or remove components and connections if needed. "+
			"Change connections if needed. Return the updated model. %s",
			summary, modeling)

	default:
		return "", fmt.Errorf("prompt: no correction prompt for %T", cause)
	}

	return fmt.Sprintf("%s You design electrical circuits based on a provided specification. "+
		"The following JSON contains a model of a system with its components and connections: "+
		"%s "+
		"Improve this model and the JSON using the following instructions: "+
		"%s Only return a single JSON object, not other text. %s",
		Preface, modelJSON, instruction, schema), nil
}

// EstimateTokens estimates the token count for a prompt using the
// chars/4 approximation. Actual tokenization varies by model.
func EstimateTokens(content string) int {
	if content == "" {
		return 0
	}
	return (len(content) + 3) / 4
}
