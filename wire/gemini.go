package wire

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
)

type geminiFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

type geminiTool struct {
	Type     string         `json:"type"`
	Function geminiFunction `json:"function"`
}

// Gemini projects the schema into the Gemini function calling format.
// Every node carrying an enum — at any nesting level — is rewritten to
// type "string" with format "enum", and its values are stringified.
// This rewrite is lossy for non-string enums and mandated by the
// format; validation must keep using the canonical schema.
func Gemini(name, description string, params *jsonschema.Schema) (json.RawMessage, error) {
	flat, err := flatten(params)
	if err != nil {
		return nil, err
	}
	rewriteEnums(flat)
	return marshalTool(geminiTool{
		Type: "function",
		Function: geminiFunction{
			Name:        name,
			Description: description,
			Parameters:  flat,
		},
	})
}

func rewriteEnums(s *jsonschema.Schema) {
	if s == nil || s == jsonschema.FalseSchema || s == jsonschema.TrueSchema {
		return
	}
	if len(s.Enum) > 0 {
		values := make([]any, len(s.Enum))
		for i, v := range s.Enum {
			if str, ok := v.(string); ok {
				values[i] = str
			} else {
				values[i] = fmt.Sprint(v)
			}
		}
		s.Enum = values
		s.Type = "string"
		s.Format = "enum"
	}
	if s.Properties != nil {
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			rewriteEnums(pair.Value)
		}
	}
	rewriteEnums(s.Items)
	rewriteEnums(s.AdditionalProperties)
	for _, v := range s.AnyOf {
		rewriteEnums(v)
	}
}
