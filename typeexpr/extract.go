package typeexpr

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// Extract introspects a Go struct type and produces its Object
// expression, preserving declaration order. Field names follow the json
// tag, enum sets and defaults follow the jsonschema tag
// (`jsonschema:"enum=a,enum=b,default=a,description=..."`).
//
// Extraction is pure: defaults are captured structurally from tags, not
// evaluated. A type the mapping table cannot express yields an
// UnsupportedFieldError naming the field.
//
// Recursive types are safe: each Go type maps to a single shared
// *Object, registered before its fields are walked, so self-references
// close the graph instead of expanding forever.
func Extract(t reflect.Type) (*Object, error) {
	ex := &extractor{seen: make(map[reflect.Type]*Object)}
	return ex.object(t)
}

type extractor struct {
	seen map[reflect.Type]*Object
}

func (ex *extractor) object(t reflect.Type) (*Object, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, &UnsupportedFieldError{Field: t.String(), Reason: "expected a struct type"}
	}
	if o, ok := ex.seen[t]; ok {
		return o, nil
	}

	o := &Object{Name: t.Name()}
	// Register before recursing so self-references resolve to o itself.
	ex.seen[t] = o

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := fieldName(sf)
		if name == "" {
			continue
		}

		tag := parseSchemaTag(sf.Tag.Get("jsonschema"))
		expr, err := ex.expr(sf.Type, name)
		if err != nil {
			return nil, err
		}

		if len(tag.enum) > 0 {
			prim, ok := expr.(Primitive)
			if !ok {
				return nil, &UnsupportedFieldError{Field: name, Reason: "enum values require a scalar field"}
			}
			values := make([]any, len(tag.enum))
			for j, raw := range tag.enum {
				v, err := parseScalar(raw, prim.Type, name)
				if err != nil {
					return nil, err
				}
				values[j] = v
			}
			expr = Enum{Type: prim.Type, Values: values}
		}

		var def any
		if tag.hasDefault {
			st := scalarType(expr)
			if st == "" {
				return nil, &UnsupportedFieldError{Field: name, Reason: "defaults are only supported on scalar fields"}
			}
			def, err = parseScalar(tag.def, st, name)
			if err != nil {
				return nil, err
			}
		}

		_, optional := expr.(Optional)
		o.Fields = append(o.Fields, Field{
			Name:        name,
			Type:        expr,
			Default:     def,
			Required:    def == nil && !optional,
			Description: tag.description,
		})
	}
	return o, nil
}

// expr is the mapping table from Go type declarations to the variant.
func (ex *extractor) expr(t reflect.Type, field string) (Expr, error) {
	if t == timeType {
		return Primitive{Type: "string", Format: "date-time"}, nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem, err := ex.expr(t.Elem(), field)
		if err != nil {
			return nil, err
		}
		return Optional{Elem: elem}, nil
	case reflect.String:
		return Primitive{Type: "string"}, nil
	case reflect.Bool:
		return Primitive{Type: "boolean"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Primitive{Type: "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return Primitive{Type: "number"}, nil
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			// []byte carries base64 text on the wire.
			return Primitive{Type: "string"}, nil
		}
		elem, err := ex.expr(t.Elem(), field)
		if err != nil {
			return nil, err
		}
		return Array{Elem: elem}, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, &UnsupportedFieldError{Field: field, Reason: "map keys must be strings"}
		}
		elem, err := ex.expr(t.Elem(), field)
		if err != nil {
			return nil, err
		}
		return Map{Elem: elem}, nil
	case reflect.Struct:
		if t.Name() == "" {
			return nil, &UnsupportedFieldError{Field: field, Reason: "anonymous struct types are not supported"}
		}
		return ex.object(t)
	default:
		return nil, &UnsupportedFieldError{Field: field, Reason: fmt.Sprintf("cannot express %s type", t.Kind())}
	}
}

// fieldName resolves the wire name of a struct field from its json tag.
// Returns "" for fields excluded with json:"-".
func fieldName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return sf.Name
}

type schemaTag struct {
	enum        []string
	def         string
	hasDefault  bool
	description string
}

// parseSchemaTag reads the jsonschema struct tag. Unrecognized entries
// are ignored so types tagged for other reflectors still extract.
func parseSchemaTag(raw string) schemaTag {
	var tag schemaTag
	for _, part := range strings.Split(raw, ",") {
		switch {
		case strings.HasPrefix(part, "enum="):
			tag.enum = append(tag.enum, strings.TrimPrefix(part, "enum="))
		case strings.HasPrefix(part, "default="):
			tag.def = strings.TrimPrefix(part, "default=")
			tag.hasDefault = true
		case strings.HasPrefix(part, "description="):
			tag.description = strings.TrimPrefix(part, "description=")
		}
	}
	return tag
}

// scalarType reports the primitive type a tag literal should be parsed
// as, unwrapping optionals. Empty when the expression is not scalar.
func scalarType(e Expr) string {
	switch v := e.(type) {
	case Primitive:
		return v.Type
	case Enum:
		return v.Type
	case Optional:
		return scalarType(v.Elem)
	}
	return ""
}

func parseScalar(raw, typ, field string) (any, error) {
	switch typ {
	case "string":
		return raw, nil
	case "integer":
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &UnsupportedFieldError{Field: field, Reason: fmt.Sprintf("invalid integer literal %q", raw)}
		}
		return n, nil
	case "number":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &UnsupportedFieldError{Field: field, Reason: fmt.Sprintf("invalid number literal %q", raw)}
		}
		return f, nil
	case "boolean":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &UnsupportedFieldError{Field: field, Reason: fmt.Sprintf("invalid boolean literal %q", raw)}
		}
		return b, nil
	}
	return nil, &UnsupportedFieldError{Field: field, Reason: fmt.Sprintf("cannot parse %q literal", typ)}
}
