package adapter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i2y/tooladapt/schema"
)

type Product struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	InStock bool    `json:"in_stock,omitempty" jsonschema:"default=true"`
}

type User struct {
	Name string  `json:"name"`
	Age  int     `json:"age"`
	Note *string `json:"note,omitempty"`
}

type Node struct {
	Value int   `json:"value"`
	Next  *Node `json:"next,omitempty"`
}

const productDoc = `A product listing.

:param name: Display name of the product.
:param price: Unit price.
:param in_stock: Whether the product is currently available.`

func TestNewStruct(t *testing.T) {
	a, err := NewStruct[Product](WithDoc(productDoc))
	require.NoError(t, err)

	assert.Equal(t, "Product", a.Name())
	assert.Equal(t, "A product listing.", a.Description())

	var m map[string]any
	raw, err := json.Marshal(a.Schema())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, []any{"name", "price"}, m["required"])
	assert.Equal(t, false, m["additionalProperties"])
}

func TestNewStruct_WithName(t *testing.T) {
	a, err := NewStruct[Product](WithName("product_listing"))
	require.NoError(t, err)
	assert.Equal(t, "product_listing", a.Name())
}

func TestStructAdapter_Validate(t *testing.T) {
	a := MustNewStruct[Product](WithDoc(productDoc))

	tests := []struct {
		name  string
		input any
		want  Product
	}{
		{
			name:  "native map with default applied",
			input: map[string]any{"name": "x", "price": 1.0},
			want:  Product{Name: "x", Price: 1.0, InStock: true},
		},
		{
			name:  "JSON text",
			input: `{"name":"x","price":1.0}`,
			want:  Product{Name: "x", Price: 1.0, InStock: true},
		},
		{
			name:  "explicit in_stock",
			input: map[string]any{"name": "y", "price": 2.5, "in_stock": false},
			want:  Product{Name: "y", Price: 2.5, InStock: false},
		},
		{
			name:  "numeric string coerced",
			input: map[string]any{"name": "z", "price": "3.5"},
			want:  Product{Name: "z", Price: 3.5, InStock: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Validate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStructAdapter_ValidateErrors(t *testing.T) {
	a := MustNewStruct[Product]()

	t.Run("missing required field", func(t *testing.T) {
		_, err := a.Validate(map[string]any{"name": "x"})
		var verr *schema.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "price", verr.Path)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := a.Validate(`{"name":"x","price":1.0,"color":"red"}`)
		var verr *schema.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "color", verr.Path)
	})

	t.Run("invalid JSON text", func(t *testing.T) {
		_, err := a.Validate(`{"name":`)
		var derr *InputDecodeError
		require.ErrorAs(t, err, &derr)
	})
}

func TestStructAdapter_ValidateIsLeftInverse(t *testing.T) {
	a := MustNewStruct[User]()

	values := []User{
		{Name: "a", Age: 30},
		{Name: "b", Age: 0, Note: ptr("hi")},
	}

	for _, v := range values {
		raw, err := json.Marshal(v)
		require.NoError(t, err)

		got, err := a.Validate(string(raw))
		require.NoError(t, err)
		assert.Equal(t, v, got)

		// A typed value is also accepted directly.
		got, err = a.Validate(v)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestStructAdapter_RecursiveType(t *testing.T) {
	a, err := NewStruct[Node]()
	require.NoError(t, err, "canonical construction of a self-referential type succeeds")

	raw, err := json.Marshal(a.Schema())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "$ref")
	assert.Contains(t, string(raw), "$defs")

	var rse *schema.RecursiveSchemaError
	_, err = a.FlatSchema()
	require.ErrorAs(t, err, &rse)

	_, err = a.OpenAISchema()
	require.ErrorAs(t, err, &rse, "projections flatten and surface the same error")

	got, err := a.Validate(`{"value": 1, "next": {"value": 2}}`)
	require.NoError(t, err, "validation follows the data, not the schema graph")
	require.NotNil(t, got.Next)
	assert.Equal(t, 2, got.Next.Value)
}

func TestStructAdapter_Definition(t *testing.T) {
	a := MustNewStruct[Product]()
	assert.Equal(t, "Product(name: string, price: number, in_stock: boolean = true)", a.Definition())

	b := MustNewStruct[Product](WithDoc(productDoc))
	assert.Equal(t,
		"Product(name: string, price: number, in_stock: boolean = true)\n\n"+productDoc,
		b.Definition())
}

func TestStructAdapter_ProjectionsAreCached(t *testing.T) {
	a := MustNewStruct[Product](WithDoc(productDoc))

	first, err := a.OpenAISchema()
	require.NoError(t, err)
	second, err := a.OpenAISchema()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	anthropic, err := a.AnthropicSchema()
	require.NoError(t, err)
	assert.Contains(t, string(anthropic), `"input_schema"`)

	gemini, err := a.GeminiSchema()
	require.NoError(t, err)
	assert.Contains(t, string(gemini), `"parameters"`)
}

func TestStructAdapter_MCPTool(t *testing.T) {
	a := MustNewStruct[Product](WithDoc(productDoc))

	tool, err := a.MCPTool()
	require.NoError(t, err)
	assert.Equal(t, "Product", tool.Name)
	assert.Equal(t, "A product listing.", tool.Description)
	require.NotNil(t, tool.InputSchema)
}

func TestMustNewStruct_PanicsOnUnsupported(t *testing.T) {
	type Bad struct {
		Ch chan int `json:"ch"`
	}
	assert.Panics(t, func() {
		MustNewStruct[Bad]()
	})
}

func ptr[T any](v T) *T {
	return &v
}
