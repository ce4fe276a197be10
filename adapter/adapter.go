// Package adapter wraps Go struct types and typed callables in
// schema-bearing adapters for LLM function calling.
//
// An adapter is constructed once, computes its canonical schema and
// documentation artifacts immediately (failing fast on unsupported type
// shapes), and is immutable afterward. Flattened and projected schema
// forms are derived lazily and cached, so concurrent reads of one
// adapter are safe.
package adapter

import (
	"context"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/i2y/tooladapt/docbind"
	"github.com/i2y/tooladapt/schema"
	"github.com/i2y/tooladapt/typeexpr"
	"github.com/i2y/tooladapt/wire"
)

// Adapter is the common surface of struct and function adapters.
type Adapter interface {
	// Name returns the adapted object's name as seen by the LLM.
	Name() string

	// Description returns the summary bound from the documentation
	// block, or "" when none was provided.
	Description() string

	// Definition renders the source-level signature plus the original
	// documentation block, for context injection.
	Definition() string

	// Schema returns the canonical schema: an object node with $defs
	// and $ref for nested composites. Callers must not mutate it.
	Schema() *jsonschema.Schema

	// FlatSchema returns the canonical schema with every internal
	// reference inlined. Self-referential types return
	// *schema.RecursiveSchemaError.
	FlatSchema() (*jsonschema.Schema, error)

	// OpenAISchema, AnthropicSchema and GeminiSchema return the three
	// function-calling projections. Repeated calls return identical
	// bytes.
	OpenAISchema() (json.RawMessage, error)
	AnthropicSchema() (json.RawMessage, error)
	GeminiSchema() (json.RawMessage, error)

	// MCPTool returns the adapter as an MCP tool declaration.
	MCPTool() (*mcp.Tool, error)

	// ValidateInput validates a native value or JSON text against the
	// canonical schema. Struct adapters return the coerced typed value;
	// function adapters invoke the wrapped callable with the coerced
	// arguments and return its result.
	ValidateInput(ctx context.Context, input any) (any, error)
}

// Option configures adapter construction.
type Option func(*config)

type config struct {
	name string
	doc  string
}

// WithName overrides the adapter name derived from the type.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithDoc attaches a documentation block in the field-tag format
// understood by docbind (summary text followed by :param name: lines).
func WithDoc(doc string) Option {
	return func(c *config) {
		c.doc = doc
	}
}

// base holds the artifacts shared by both adapter kinds. Everything
// here is written at construction or under a sync.Once.
type base struct {
	name       string
	doc        docbind.Doc
	fields     []typeexpr.Field
	canonical  *jsonschema.Schema
	definition string

	flatOnce sync.Once
	flat     *jsonschema.Schema
	flatErr  error

	openai    lazyJSON
	anthropic lazyJSON
	gemini    lazyJSON
}

func newBase(name, docText string, obj *typeexpr.Object) (*base, error) {
	doc := docbind.Parse(docText)
	canonical, err := schema.Build(obj, doc)
	if err != nil {
		return nil, err
	}
	return &base{
		name:       name,
		doc:        doc,
		fields:     obj.Fields,
		canonical:  canonical,
		definition: renderDefinition(name, obj.Fields, docText),
	}, nil
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Description() string {
	return b.doc.Summary
}

func (b *base) Definition() string {
	return b.definition
}

func (b *base) Schema() *jsonschema.Schema {
	return b.canonical
}

func (b *base) FlatSchema() (*jsonschema.Schema, error) {
	b.flatOnce.Do(func() {
		b.flat, b.flatErr = schema.Flatten(b.canonical)
	})
	return b.flat, b.flatErr
}

func (b *base) OpenAISchema() (json.RawMessage, error) {
	return b.openai.get(func() (json.RawMessage, error) {
		return wire.OpenAI(b.name, b.doc.Summary, b.canonical)
	})
}

func (b *base) AnthropicSchema() (json.RawMessage, error) {
	return b.anthropic.get(func() (json.RawMessage, error) {
		return wire.Anthropic(b.name, b.doc.Summary, b.canonical)
	})
}

func (b *base) GeminiSchema() (json.RawMessage, error) {
	return b.gemini.get(func() (json.RawMessage, error) {
		return wire.Gemini(b.name, b.doc.Summary, b.canonical)
	})
}

func (b *base) MCPTool() (*mcp.Tool, error) {
	return wire.MCP(b.name, b.doc.Summary, b.canonical)
}

// validate decodes and coerces input against the canonical schema.
func (b *base) validate(input any) (any, error) {
	value, err := decodeInput(input)
	if err != nil {
		return nil, err
	}
	return schema.Validate(b.canonical, value)
}

// decodeInput normalizes the accepted input forms: JSON text, a generic
// map, or any native value serializable to an object. nil stands for an
// empty argument set.
func decodeInput(input any) (any, error) {
	switch in := input.(type) {
	case nil:
		return map[string]any{}, nil
	case string:
		return decodeJSON([]byte(in))
	case []byte:
		return decodeJSON(in)
	case json.RawMessage:
		return decodeJSON(in)
	case map[string]any:
		return in, nil
	default:
		raw, err := json.Marshal(input)
		if err != nil {
			return nil, &InputDecodeError{Cause: err}
		}
		return decodeJSON(raw)
	}
}

func decodeJSON(raw []byte) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &InputDecodeError{Cause: err}
	}
	return v, nil
}

type lazyJSON struct {
	once sync.Once
	raw  json.RawMessage
	err  error
}

func (l *lazyJSON) get(f func() (json.RawMessage, error)) (json.RawMessage, error) {
	l.once.Do(func() {
		l.raw, l.err = f()
	})
	return l.raw, l.err
}
