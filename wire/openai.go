package wire

import (
	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
)

type openaiFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

type openaiTool struct {
	Type     string         `json:"type"`
	Function openaiFunction `json:"function"`
}

// OpenAI projects the schema into the OpenAI function calling format:
// the flattened schema tree sits verbatim under function.parameters.
func OpenAI(name, description string, params *jsonschema.Schema) (json.RawMessage, error) {
	flat, err := flatten(params)
	if err != nil {
		return nil, err
	}
	return marshalTool(openaiTool{
		Type: "function",
		Function: openaiFunction{
			Name:        name,
			Description: description,
			Parameters:  flat,
		},
	})
}
