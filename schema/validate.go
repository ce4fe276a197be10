package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
)

// Validate coerces a decoded value against the canonical schema and
// returns the coerced result.
//
// Objects are closed: unknown keys are rejected. Missing required
// fields and type mismatches yield a *ValidationError naming the field.
// Absent fields that declare a default receive it. The only cross-type
// coercion is numeric strings into number/integer targets.
func Validate(root *jsonschema.Schema, value any) (any, error) {
	v := &validator{defs: root.Definitions}
	return v.value(root, value, "")
}

type validator struct {
	defs jsonschema.Definitions
}

func (v *validator) value(s *jsonschema.Schema, raw any, path string) (any, error) {
	if s.Ref != "" {
		name := strings.TrimPrefix(s.Ref, defsPrefix)
		target, ok := v.defs[name]
		if !ok {
			return nil, fmt.Errorf("unresolved reference %q", s.Ref)
		}
		return v.value(target, raw, path)
	}

	if len(s.AnyOf) > 0 {
		for _, variant := range s.AnyOf {
			if out, err := v.value(variant, raw, path); err == nil {
				return out, nil
			}
		}
		return nil, &ValidationError{Path: path, Reason: "does not match any allowed variant"}
	}

	if len(s.Enum) > 0 {
		out, err := v.scalar(s.Type, raw, path)
		if err != nil {
			return nil, err
		}
		for _, allowed := range s.Enum {
			if scalarEqual(out, allowed) {
				return out, nil
			}
		}
		return nil, &ValidationError{Path: path, Reason: fmt.Sprintf("value %v is not one of the allowed values", raw)}
	}

	switch s.Type {
	case "object":
		return v.object(s, raw, path)
	case "array":
		items, ok := raw.([]any)
		if !ok {
			return nil, &ValidationError{Path: path, Reason: fmt.Sprintf("expected array, got %T", raw)}
		}
		out := make([]any, len(items))
		for i, item := range items {
			coerced, err := v.value(s.Items, item, childPath(path, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			out[i] = coerced
		}
		return out, nil
	default:
		return v.scalar(s.Type, raw, path)
	}
}

func (v *validator) object(s *jsonschema.Schema, raw any, path string) (any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{Path: path, Reason: fmt.Sprintf("expected object, got %T", raw)}
	}

	// A node without properties is a string-keyed mapping; its values
	// validate against additionalProperties.
	if s.Properties == nil {
		if s.AdditionalProperties == nil || s.AdditionalProperties == jsonschema.TrueSchema {
			return m, nil
		}
		if s.AdditionalProperties == jsonschema.FalseSchema {
			for key := range m {
				return nil, &ValidationError{Path: childPath(path, key), Reason: "unknown field"}
			}
			return map[string]any{}, nil
		}
		out := make(map[string]any, len(m))
		for key, val := range m {
			coerced, err := v.value(s.AdditionalProperties, val, childPath(path, key))
			if err != nil {
				return nil, err
			}
			out[key] = coerced
		}
		return out, nil
	}

	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}

	for key := range m {
		if _, known := s.Properties.Get(key); !known {
			return nil, &ValidationError{Path: childPath(path, key), Reason: "unknown field"}
		}
	}

	out := make(map[string]any, s.Properties.Len())
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		name, prop := pair.Key, pair.Value
		raw, present := m[name]
		if !present {
			if required[name] {
				return nil, &ValidationError{Path: childPath(path, name), Reason: "missing required field"}
			}
			if prop.Default != nil {
				out[name] = prop.Default
			}
			continue
		}
		if raw == nil && !required[name] {
			// Explicit null on an optional field stays null.
			out[name] = nil
			continue
		}
		coerced, err := v.value(prop, raw, childPath(path, name))
		if err != nil {
			return nil, err
		}
		out[name] = coerced
	}
	return out, nil
}

func (v *validator) scalar(typ string, raw any, path string) (any, error) {
	switch typ {
	case "string":
		if s, ok := raw.(string); ok {
			return s, nil
		}
	case "boolean":
		if b, ok := raw.(bool); ok {
			return b, nil
		}
	case "integer":
		switch n := raw.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case float64:
			if n == float64(int64(n)) {
				return int64(n), nil
			}
		case string:
			if i, err := strconv.ParseInt(n, 10, 64); err == nil {
				return i, nil
			}
		}
	case "number":
		switch n := raw.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case float32:
			return float64(n), nil
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				return f, nil
			}
		}
	case "null":
		if raw == nil {
			return nil, nil
		}
	}
	return nil, &ValidationError{Path: path, Reason: fmt.Sprintf("expected %s, got %T", typ, raw)}
}

// scalarEqual compares a coerced value to an enum member, treating all
// numeric representations as equal when their values match.
func scalarEqual(a, b any) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af == bf
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func childPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
