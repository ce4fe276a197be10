package wire

import (
	json "github.com/goccy/go-json"
	gjsonschema "github.com/google/jsonschema-go/jsonschema"
	"github.com/invopop/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCP projects the schema into an MCP tool declaration. Unlike the
// function-calling variants, MCP speaks JSON Schema natively, so the
// canonical form passes through unflattened — $defs and all — which
// keeps recursive types servable. The conversion to the SDK's schema
// type goes through a JSON round-trip.
func MCP(name, description string, params *jsonschema.Schema) (*mcp.Tool, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	var input gjsonschema.Schema
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, err
	}
	return &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: &input,
	}, nil
}
