package adapter

import (
	"context"
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"

	"github.com/i2y/tooladapt/typeexpr"
)

// StructAdapter wraps one composite type T. Its field descriptors,
// canonical schema and documentation are computed at construction and
// frozen for the adapter's lifetime.
type StructAdapter[T any] struct {
	*base
}

// NewStruct creates an adapter for the struct type T.
//
// Example:
//
//	type Product struct {
//	    Name    string  `json:"name"`
//	    Price   float64 `json:"price"`
//	    InStock bool    `json:"in_stock,omitempty" jsonschema:"default=true"`
//	}
//
//	product, err := adapter.NewStruct[Product](adapter.WithDoc(`
//	    A product listing.
//
//	    :param name: Display name of the product.
//	    :param price: Unit price.
//	    :param in_stock: Whether the product is currently available.
//	`))
func NewStruct[T any](opts ...Option) (*StructAdapter[T], error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	t := reflect.TypeOf((*T)(nil)).Elem()
	obj, err := typeexpr.Extract(t)
	if err != nil {
		return nil, err
	}

	name := cfg.name
	if name == "" {
		name = obj.Name
	}
	if name == "" {
		name = "object"
	}

	b, err := newBase(name, cfg.doc, obj)
	if err != nil {
		return nil, err
	}
	return &StructAdapter[T]{base: b}, nil
}

// MustNewStruct is like NewStruct but panics on error. Useful for
// package-level adapter definitions.
func MustNewStruct[T any](opts ...Option) *StructAdapter[T] {
	a, err := NewStruct[T](opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Validate coerces a native value or JSON text against the canonical
// schema and returns the typed result. Unknown keys are rejected,
// missing required fields are errors, and declared defaults fill in
// absent fields.
func (a *StructAdapter[T]) Validate(input any) (T, error) {
	var out T
	value, err := a.validate(input)
	if err != nil {
		return out, err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return out, fmt.Errorf("encoding validated input: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decoding validated input: %w", err)
	}
	return out, nil
}

// ValidateInput implements Adapter. The context is unused for struct
// adapters; validation is pure computation.
func (a *StructAdapter[T]) ValidateInput(_ context.Context, input any) (any, error) {
	return a.Validate(input)
}
