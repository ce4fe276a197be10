// Package typeexpr describes adapter field shapes as a closed type
// expression variant and extracts them from Go struct declarations.
//
// The variant is deliberately small: it covers exactly what the schema
// builder can lower. Anything outside it is rejected at extraction time
// with an UnsupportedFieldError, so adapters fail fast at construction.
package typeexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is a type expression. The variant is closed: only the types in
// this package implement it.
type Expr interface {
	// String renders the expression in the human-readable form used by
	// definition rendering, e.g. "array<string>" or "integer?".
	String() string

	isExpr()
}

// Primitive is a JSON scalar type: "string", "number", "integer",
// "boolean" or "null". Format optionally carries a JSON Schema format
// hint such as "date-time".
type Primitive struct {
	Type   string
	Format string
}

// Enum is a fixed set of allowed scalar values sharing one primitive type.
type Enum struct {
	Type   string
	Values []any
}

// Object is a composite aggregate: a named, ordered set of fields.
// Recursive types form a cyclic Object graph; extraction guarantees the
// graph is finite by sharing one *Object per Go type.
type Object struct {
	Name   string
	Fields []Field
}

// Array is a sequence of Elem values.
type Array struct {
	Elem Expr
}

// Map is a string-keyed mapping to Elem values.
type Map struct {
	Elem Expr
}

// Union is a choice between variants.
type Union struct {
	Variants []Expr
}

// Optional wraps an expression whose field may be absent or null.
type Optional struct {
	Elem Expr
}

// Field describes one field of an Object: its name, type expression,
// structurally captured default, and whether input must supply it.
// A field is required iff it declares no default and is not optional.
type Field struct {
	Name        string
	Type        Expr
	Default     any
	Required    bool
	Description string
}

func (Primitive) isExpr() {}
func (Enum) isExpr()      {}
func (*Object) isExpr()   {}
func (Array) isExpr()     {}
func (Map) isExpr()       {}
func (Union) isExpr()     {}
func (Optional) isExpr()  {}

func (p Primitive) String() string {
	return p.Type
}

func (e Enum) String() string {
	parts := make([]string, len(e.Values))
	for i, v := range e.Values {
		parts[i] = Repr(v)
	}
	return "enum(" + strings.Join(parts, ", ") + ")"
}

func (o *Object) String() string {
	if o.Name != "" {
		return o.Name
	}
	return "object"
}

func (a Array) String() string {
	return "array<" + a.Elem.String() + ">"
}

func (m Map) String() string {
	return "map<string, " + m.Elem.String() + ">"
}

func (u Union) String() string {
	parts := make([]string, len(u.Variants))
	for i, v := range u.Variants {
		parts[i] = v.String()
	}
	return strings.Join(parts, " | ")
}

func (o Optional) String() string {
	return o.Elem.String() + "?"
}

// Repr renders a scalar value the way definitions display defaults and
// enum members: strings quoted, everything else in its literal form.
func Repr(v any) string {
	switch s := v.(type) {
	case string:
		return strconv.Quote(s)
	case nil:
		return "null"
	default:
		return fmt.Sprint(v)
	}
}
