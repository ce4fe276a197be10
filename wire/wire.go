// Package wire projects a canonical schema into third-party
// function-calling formats: OpenAI (parameters), Anthropic
// (input_schema), Gemini (parameters with enum reformatting), and MCP
// tool declarations.
//
// Every projection is a pure rewrite: the input schema is flattened
// into a private copy first, so callers may pass either the canonical
// or an already-flattened form and nothing they hold is ever mutated.
// Projecting the same schema twice yields byte-identical output.
// Projected forms are for the wire only — validation always runs
// against the canonical schema.
package wire

import (
	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"

	"github.com/i2y/tooladapt/schema"
)

// flatten resolves the input into a private, self-contained copy.
// Recursive schemas surface *schema.RecursiveSchemaError here, at the
// moment a projection is requested.
func flatten(s *jsonschema.Schema) (*jsonschema.Schema, error) {
	return schema.Flatten(s)
}

func marshalTool(tool any) (json.RawMessage, error) {
	raw, err := json.Marshal(tool)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}
