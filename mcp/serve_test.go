package mcp

import (
	"context"
	"testing"

	gjsonschema "github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i2y/tooladapt/adapter"
)

type echoInput struct {
	Text string `json:"text"`
}

type listInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"default=10"`
}

func TestTool(t *testing.T) {
	a := adapter.MustNewStruct[echoInput](adapter.WithDoc("Echo the input.\n\n:param text: What to echo."))

	tool, err := Tool(a)
	require.NoError(t, err)
	assert.Equal(t, "echoInput", tool.Name)
	assert.Equal(t, "Echo the input.", tool.Description)
	input, ok := tool.InputSchema.(*gjsonschema.Schema)
	require.True(t, ok)
	assert.Equal(t, "object", input.Type)
}

func TestHandler_AbsentArguments(t *testing.T) {
	a := adapter.MustNewFunc("list", "",
		func(ctx context.Context, in listInput) (int, error) {
			return in.Limit, nil
		})

	h := Handler(a)
	res, err := h(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Name: "list"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "10", res.Content[0].(*mcp.TextContent).Text)
}

func TestHandler_ValidationFailureIsToolError(t *testing.T) {
	a := adapter.MustNewStruct[echoInput]()

	h := Handler(a)
	res, err := h(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      "echoInput",
			Arguments: []byte(`{"text": "hi", "volume": 11}`),
		},
	})
	require.NoError(t, err, "validation failures are tool errors, not protocol errors")
	assert.True(t, res.IsError)
}

func TestRenderResult(t *testing.T) {
	text, err := renderResult("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", text)

	text, err = renderResult(map[string]any{"n": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n": 1}`, text)
}

func TestErrorResult(t *testing.T) {
	res := errorResult(assert.AnError)
	assert.True(t, res.IsError)
	require.Len(t, res.Content, 1)
}
