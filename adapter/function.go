package adapter

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"

	"github.com/i2y/tooladapt/typeexpr"
)

// FunctionAdapter wraps one callable. Its field set is synthesized from
// the parameter struct In; the context parameter carries no schema and
// is bound at call time.
type FunctionAdapter[In any, Out any] struct {
	*base
	fn func(ctx context.Context, in In) (Out, error)
}

// NewFunc creates an adapter for a callable. The doc block documents
// the callable and its parameters in the docbind field-tag format.
//
// Example:
//
//	type SearchInput struct {
//	    Text    string `json:"text"`
//	    Backend string `json:"backend,omitempty" jsonschema:"enum=api,enum=html,enum=lite,default=api"`
//	}
//
//	search, err := adapter.NewFunc("search", `
//	    Search the web.
//
//	    :param text: The query text.
//	    :param backend: Which search backend to use.
//	`, func(ctx context.Context, in SearchInput) ([]string, error) {
//	    ...
//	})
func NewFunc[In any, Out any](
	name, doc string,
	fn func(ctx context.Context, in In) (Out, error),
) (*FunctionAdapter[In, Out], error) {
	if fn == nil {
		return nil, errors.New("adapter: fn is required")
	}
	if name == "" {
		return nil, errors.New("adapter: name is required")
	}

	t := reflect.TypeOf((*In)(nil)).Elem()
	obj, err := typeexpr.Extract(t)
	if err != nil {
		return nil, err
	}

	b, err := newBase(name, doc, obj)
	if err != nil {
		return nil, err
	}
	return &FunctionAdapter[In, Out]{base: b, fn: fn}, nil
}

// MustNewFunc is like NewFunc but panics on error.
func MustNewFunc[In any, Out any](
	name, doc string,
	fn func(ctx context.Context, in In) (Out, error),
) *FunctionAdapter[In, Out] {
	a, err := NewFunc(name, doc, fn)
	if err != nil {
		panic(err)
	}
	return a
}

// Call validates the input against the canonical schema, binds the
// coerced arguments by name, and invokes the wrapped callable. Errors
// returned by the callable propagate unchanged.
func (a *FunctionAdapter[In, Out]) Call(ctx context.Context, input any) (Out, error) {
	var zero Out
	value, err := a.validate(input)
	if err != nil {
		return zero, err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return zero, fmt.Errorf("encoding validated input: %w", err)
	}
	var in In
	if err := json.Unmarshal(raw, &in); err != nil {
		return zero, fmt.Errorf("decoding validated input: %w", err)
	}
	return a.fn(ctx, in)
}

// TypedCall invokes the wrapped callable directly with a typed input,
// bypassing validation.
func (a *FunctionAdapter[In, Out]) TypedCall(ctx context.Context, in In) (Out, error) {
	return a.fn(ctx, in)
}

// ValidateInput implements Adapter by invoking the callable.
func (a *FunctionAdapter[In, Out]) ValidateInput(ctx context.Context, input any) (any, error) {
	return a.Call(ctx, input)
}
