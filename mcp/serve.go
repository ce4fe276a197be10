// Package mcp serves adapters over the Model Context Protocol.
// It turns any adapter into an MCP tool whose arguments are routed
// through the adapter's schema validation before invocation.
package mcp

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/i2y/tooladapt/adapter"
)

// Tool returns the MCP tool declaration for an adapter.
func Tool(a adapter.Adapter) (*mcp.Tool, error) {
	return a.MCPTool()
}

// Handler returns an MCP tool handler backed by the adapter. Arguments
// are validated and coerced against the adapter's canonical schema; the
// result is returned as text content. Validation failures surface as
// tool errors rather than protocol errors, so the calling model can see
// and correct them.
func Handler(a adapter.Adapter) func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := json.Marshal(req.Params.Arguments)
		if err != nil {
			return nil, fmt.Errorf("reading tool arguments: %w", err)
		}

		// Clients omit arguments entirely for zero-argument calls; that
		// marshals to null and stands for an empty argument set.
		var input any
		if len(raw) > 0 && string(raw) != "null" {
			input = []byte(raw)
		}

		out, err := a.ValidateInput(ctx, input)
		if err != nil {
			return errorResult(err), nil
		}

		text, err := renderResult(out)
		if err != nil {
			return nil, err
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil
	}
}

// AddTool registers an adapter as a tool on an MCP server.
func AddTool(server *mcp.Server, a adapter.Adapter) error {
	tool, err := Tool(a)
	if err != nil {
		return fmt.Errorf("declaring tool %q: %w", a.Name(), err)
	}
	server.AddTool(tool, Handler(a))
	return nil
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + err.Error()}},
		IsError: true,
	}
}

// renderResult turns an invocation result into text content. Strings
// pass through; everything else is JSON encoded.
func renderResult(out any) (string, error) {
	if s, ok := out.(string); ok {
		return s, nil
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encoding tool result: %w", err)
	}
	return string(raw), nil
}
