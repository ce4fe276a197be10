// Package schema builds the canonical JSON Schema form of adapter
// types, flattens internal references, and validates untyped input
// against the canonical form.
//
// The canonical representation is invopop's *jsonschema.Schema: a root
// object node with ordered properties, a required list,
// additionalProperties: false, and a $defs arena holding every nested
// composite keyed by type name. Validation always consumes the
// canonical form; the flattened form exists for wire projections only.
package schema

import (
	"fmt"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/i2y/tooladapt/docbind"
	"github.com/i2y/tooladapt/typeexpr"
)

const defsPrefix = "#/$defs/"

// Build lowers an object expression into its canonical schema,
// attaching the documentation block's summary and field descriptions.
//
// Every nested composite is registered in $defs and referenced with
// $ref; registration happens before recursion, so self-referential
// types terminate. A root type that is itself referenced recursively is
// represented as a bare $ref with its definition alongside the others.
//
// The only error Build reports is *typeexpr.UnsupportedFieldError.
func Build(root *typeexpr.Object, doc docbind.Doc) (*jsonschema.Schema, error) {
	b := &builder{
		defs:  jsonschema.Definitions{},
		nodes: make(map[*typeexpr.Object]*jsonschema.Schema),
		named: make(map[string]*typeexpr.Object),
	}
	if root.Name != "" {
		b.named[root.Name] = root
	}

	node, err := b.object(root, doc)
	if err != nil {
		return nil, err
	}

	out := node
	if _, ok := b.defs[root.Name]; ok {
		// The root type references itself; point at its definition like
		// any other recursive composite.
		out = &jsonschema.Schema{Ref: defsPrefix + root.Name}
	}
	if len(b.defs) > 0 {
		out.Definitions = b.defs
	}
	return out, nil
}

type builder struct {
	defs jsonschema.Definitions
	// nodes tracks every composite already under construction or done,
	// keyed by object identity, so cycles short-circuit to a $ref.
	nodes map[*typeexpr.Object]*jsonschema.Schema
	named map[string]*typeexpr.Object
}

func (b *builder) object(o *typeexpr.Object, doc docbind.Doc) (*jsonschema.Schema, error) {
	node := &jsonschema.Schema{
		Type:                 "object",
		Properties:           orderedmap.New[string, *jsonschema.Schema](),
		AdditionalProperties: jsonschema.FalseSchema,
	}
	b.nodes[o] = node
	if doc.Summary != "" {
		node.Description = doc.Summary
	}

	for _, f := range o.Fields {
		prop, err := b.lower(f.Type, f.Name)
		if err != nil {
			return nil, err
		}
		desc := doc.Param(f.Name)
		if desc == "" {
			desc = f.Description
		}
		if desc != "" {
			prop.Description = desc
		}
		if f.Default != nil {
			prop.Default = f.Default
		}
		node.Properties.Set(f.Name, prop)
		if f.Required {
			node.Required = append(node.Required, f.Name)
		}
	}
	return node, nil
}

// lower maps one type expression to a schema node.
func (b *builder) lower(e typeexpr.Expr, field string) (*jsonschema.Schema, error) {
	switch t := e.(type) {
	case typeexpr.Primitive:
		return &jsonschema.Schema{Type: t.Type, Format: t.Format}, nil
	case typeexpr.Enum:
		return &jsonschema.Schema{Type: t.Type, Enum: append([]any(nil), t.Values...)}, nil
	case typeexpr.Array:
		items, err := b.lower(t.Elem, field)
		if err != nil {
			return nil, err
		}
		return &jsonschema.Schema{Type: "array", Items: items}, nil
	case typeexpr.Map:
		values, err := b.lower(t.Elem, field)
		if err != nil {
			return nil, err
		}
		return &jsonschema.Schema{Type: "object", AdditionalProperties: values}, nil
	case typeexpr.Union:
		anyOf := make([]*jsonschema.Schema, len(t.Variants))
		for i, v := range t.Variants {
			s, err := b.lower(v, field)
			if err != nil {
				return nil, err
			}
			anyOf[i] = s
		}
		return &jsonschema.Schema{AnyOf: anyOf}, nil
	case typeexpr.Optional:
		// Required-ness is decided at the field level; the wrapped type
		// lowers as itself.
		return b.lower(t.Elem, field)
	case *typeexpr.Object:
		return b.composite(t, field)
	}
	return nil, &typeexpr.UnsupportedFieldError{Field: field, Reason: fmt.Sprintf("no lowering rule for %T", e)}
}

// composite registers a nested composite in $defs and emits a $ref to it.
func (b *builder) composite(o *typeexpr.Object, field string) (*jsonschema.Schema, error) {
	if o.Name == "" {
		return nil, &typeexpr.UnsupportedFieldError{Field: field, Reason: "unnamed composite types cannot be referenced"}
	}
	if prev, ok := b.named[o.Name]; ok && prev != o {
		return nil, &typeexpr.UnsupportedFieldError{Field: field, Reason: fmt.Sprintf("conflicting definitions named %q", o.Name)}
	}
	b.named[o.Name] = o

	node, ok := b.nodes[o]
	if !ok {
		built, err := b.object(o, docbind.Doc{})
		if err != nil {
			return nil, err
		}
		node = built
	}
	// The pointer is stable even while the node is still being filled
	// in, which is what makes recursive registration safe.
	b.defs[o.Name] = node
	return &jsonschema.Schema{Ref: defsPrefix + o.Name}, nil
}
