package schema

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Flatten returns a self-contained copy of the canonical schema with
// every $ref substituted by its definition's content and the $defs
// section dropped. The input is never mutated.
//
// Flattening a self-referential schema returns *RecursiveSchemaError:
// the set of definitions on the active expansion path is tracked, and
// re-entering one means the tree would be infinite.
func Flatten(s *jsonschema.Schema) (*jsonschema.Schema, error) {
	f := &flattener{defs: s.Definitions, active: make(map[string]bool)}
	out, err := f.resolve(s)
	if err != nil {
		return nil, err
	}
	out.Definitions = nil
	return out, nil
}

type flattener struct {
	defs   jsonschema.Definitions
	active map[string]bool
}

func (f *flattener) resolve(s *jsonschema.Schema) (*jsonschema.Schema, error) {
	if s == nil {
		return nil, nil
	}
	// Boolean sentinels are immutable and shared as-is.
	if s == jsonschema.FalseSchema || s == jsonschema.TrueSchema {
		return s, nil
	}

	if s.Ref != "" {
		name := strings.TrimPrefix(s.Ref, defsPrefix)
		if f.active[name] {
			return nil, &RecursiveSchemaError{Name: name}
		}
		target, ok := f.defs[name]
		if !ok {
			return nil, fmt.Errorf("unresolved reference %q", s.Ref)
		}
		f.active[name] = true
		out, err := f.resolve(target)
		delete(f.active, name)
		if err != nil {
			return nil, err
		}
		// A $ref node may carry field-level description and default;
		// they override the definition's own.
		if s.Description != "" {
			out.Description = s.Description
		}
		if s.Default != nil {
			out.Default = s.Default
		}
		return out, nil
	}

	out := &jsonschema.Schema{
		Type:        s.Type,
		Format:      s.Format,
		Description: s.Description,
		Default:     s.Default,
	}
	if s.Enum != nil {
		out.Enum = append([]any(nil), s.Enum...)
	}
	if s.Required != nil {
		out.Required = append([]string(nil), s.Required...)
	}
	if s.Properties != nil {
		out.Properties = orderedmap.New[string, *jsonschema.Schema]()
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			child, err := f.resolve(pair.Value)
			if err != nil {
				return nil, err
			}
			out.Properties.Set(pair.Key, child)
		}
	}
	if s.Items != nil {
		items, err := f.resolve(s.Items)
		if err != nil {
			return nil, err
		}
		out.Items = items
	}
	if s.AdditionalProperties != nil {
		ap, err := f.resolve(s.AdditionalProperties)
		if err != nil {
			return nil, err
		}
		out.AdditionalProperties = ap
	}
	if s.AnyOf != nil {
		out.AnyOf = make([]*jsonschema.Schema, len(s.AnyOf))
		for i, v := range s.AnyOf {
			c, err := f.resolve(v)
			if err != nil {
				return nil, err
			}
			out.AnyOf[i] = c
		}
	}
	return out, nil
}
