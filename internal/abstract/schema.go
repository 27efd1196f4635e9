package abstract

import _ "embed"

// SchemaJSON is the JSON schema for the circuit document FromJSON
// reads. The interpreter validates responses against it and the
// prompts quote it to the model, so it is baked into the binary.
//
//go:embed schema.json
var SchemaJSON string
