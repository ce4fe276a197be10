package wire

import (
	"encoding/json"
	"reflect"
	"testing"

	gjsonschema "github.com/google/jsonschema-go/jsonschema"
	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i2y/tooladapt/docbind"
	"github.com/i2y/tooladapt/schema"
	"github.com/i2y/tooladapt/typeexpr"
)

type searchInput struct {
	Text    string `json:"text"`
	Backend string `json:"backend,omitempty" jsonschema:"enum=api,enum=html,enum=lite,default=api"`
}

func buildSchema(t *testing.T, v any, doc string) *jsonschema.Schema {
	t.Helper()
	obj, err := typeexpr.Extract(reflect.TypeOf(v))
	require.NoError(t, err)
	s, err := schema.Build(obj, docbind.Parse(doc))
	require.NoError(t, err)
	return s
}

func asMap(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestOpenAI(t *testing.T) {
	s := buildSchema(t, searchInput{}, "Search the web.")

	raw, err := OpenAI("search", "Search the web.", s)
	require.NoError(t, err)

	m := asMap(t, raw)
	assert.Equal(t, "function", m["type"])

	fn := m["function"].(map[string]any)
	assert.Equal(t, "search", fn["name"])
	assert.Equal(t, "Search the web.", fn["description"])

	params := fn["parameters"].(map[string]any)
	assert.Equal(t, "object", params["type"])
	assert.Contains(t, params["properties"], "text")
	_, hasInputSchema := fn["input_schema"]
	assert.False(t, hasInputSchema)
}

func TestAnthropic(t *testing.T) {
	s := buildSchema(t, searchInput{}, "Search the web.")

	raw, err := Anthropic("search", "Search the web.", s)
	require.NoError(t, err)

	fn := asMap(t, raw)["function"].(map[string]any)
	_, hasParameters := fn["parameters"]
	assert.False(t, hasParameters, "Anthropic places the schema under input_schema")

	params := fn["input_schema"].(map[string]any)
	assert.Equal(t, "object", params["type"])
	assert.Contains(t, params["properties"], "backend")
}

func TestGemini_EnumRewrite(t *testing.T) {
	s := buildSchema(t, searchInput{}, "")

	raw, err := Gemini("search", "", s)
	require.NoError(t, err)

	params := asMap(t, raw)["function"].(map[string]any)["parameters"].(map[string]any)
	backend := params["properties"].(map[string]any)["backend"].(map[string]any)
	assert.Equal(t, "string", backend["type"])
	assert.Equal(t, "enum", backend["format"])
	assert.Equal(t, []any{"api", "html", "lite"}, backend["enum"])
}

func TestGemini_NonStringEnumStringified(t *testing.T) {
	root := &typeexpr.Object{
		Name: "leveled",
		Fields: []typeexpr.Field{
			{Name: "level", Type: typeexpr.Enum{Type: "integer", Values: []any{int64(1), int64(2), int64(3)}}, Required: true},
		},
	}
	s, err := schema.Build(root, docbind.Doc{})
	require.NoError(t, err)

	raw, err := Gemini("set_level", "", s)
	require.NoError(t, err)

	level := asMap(t, raw)["function"].(map[string]any)["parameters"].(map[string]any)["properties"].(map[string]any)["level"].(map[string]any)
	assert.Equal(t, "string", level["type"])
	assert.Equal(t, "enum", level["format"])
	assert.Equal(t, []any{"1", "2", "3"}, level["enum"])
}

func TestGemini_NestedEnumRewrite(t *testing.T) {
	root := &typeexpr.Object{
		Name: "outer",
		Fields: []typeexpr.Field{
			{Name: "modes", Type: typeexpr.Array{Elem: typeexpr.Enum{Type: "string", Values: []any{"fast", "slow"}}}, Required: true},
		},
	}
	s, err := schema.Build(root, docbind.Doc{})
	require.NoError(t, err)

	raw, err := Gemini("configure", "", s)
	require.NoError(t, err)

	items := asMap(t, raw)["function"].(map[string]any)["parameters"].(map[string]any)["properties"].(map[string]any)["modes"].(map[string]any)["items"].(map[string]any)
	assert.Equal(t, "enum", items["format"], "the rewrite applies at every nesting level")
}

func TestOtherVariantsKeepEnumType(t *testing.T) {
	s := buildSchema(t, searchInput{}, "")

	for name, project := range map[string]func(string, string, *jsonschema.Schema) (json.RawMessage, error){
		"openai":    OpenAI,
		"anthropic": Anthropic,
	} {
		t.Run(name, func(t *testing.T) {
			raw, err := project("search", "", s)
			require.NoError(t, err)

			fn := asMap(t, raw)["function"].(map[string]any)
			params, ok := fn["parameters"].(map[string]any)
			if !ok {
				params = fn["input_schema"].(map[string]any)
			}
			backend := params["properties"].(map[string]any)["backend"].(map[string]any)
			assert.Equal(t, "string", backend["type"])
			_, hasFormat := backend["format"]
			assert.False(t, hasFormat, "only the Gemini variant reformats enums")
		})
	}
}

func TestProjectionsAreIdempotent(t *testing.T) {
	s := buildSchema(t, searchInput{}, "Search the web.")

	projections := []func() (json.RawMessage, error){
		func() (json.RawMessage, error) { return OpenAI("search", "Search the web.", s) },
		func() (json.RawMessage, error) { return Anthropic("search", "Search the web.", s) },
		func() (json.RawMessage, error) { return Gemini("search", "Search the web.", s) },
	}

	for _, project := range projections {
		first, err := project()
		require.NoError(t, err)
		second, err := project()
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second))
	}
}

func TestGemini_DoesNotMutateInput(t *testing.T) {
	s := buildSchema(t, searchInput{}, "")
	before, err := json.Marshal(s)
	require.NoError(t, err)

	_, err = Gemini("search", "", s)
	require.NoError(t, err)

	after, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestMCP(t *testing.T) {
	s := buildSchema(t, searchInput{}, "Search the web.")

	tool, err := MCP("search", "Search the web.", s)
	require.NoError(t, err)
	assert.Equal(t, "search", tool.Name)
	assert.Equal(t, "Search the web.", tool.Description)

	input, ok := tool.InputSchema.(*gjsonschema.Schema)
	require.True(t, ok)
	assert.Equal(t, "object", input.Type)
}
