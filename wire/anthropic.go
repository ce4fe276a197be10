package wire

import (
	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
)

type anthropicFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	InputSchema *jsonschema.Schema `json:"input_schema"`
}

type anthropicTool struct {
	Type     string            `json:"type"`
	Function anthropicFunction `json:"function"`
}

// Anthropic projects the schema into the Anthropic function calling
// format. The content is identical to the OpenAI projection; only the
// schema key differs (input_schema instead of parameters).
//
// The {type: "function", function: {...}} wrapper is intentional: all
// three projections share it so callers can treat them uniformly.
// Anthropic's Messages API takes the bare function object (name,
// description, input_schema); callers wiring a client directly should
// extract the function member rather than change this shape.
func Anthropic(name, description string, params *jsonschema.Schema) (json.RawMessage, error) {
	flat, err := flatten(params)
	if err != nil {
		return nil, err
	}
	return marshalTool(anthropicTool{
		Type: "function",
		Function: anthropicFunction{
			Name:        name,
			Description: description,
			InputSchema: flat,
		},
	})
}
