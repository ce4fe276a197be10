package adapter

import "sort"

// Registry manages a collection of adapters keyed by name.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
	}
}

// Register adds adapters to the registry. A later adapter with the same
// name replaces an earlier one.
func (r *Registry) Register(adapters ...Adapter) {
	for _, a := range adapters {
		r.adapters[a.Name()] = a
	}
}

// Get retrieves an adapter by name.
func (r *Registry) Get(name string) (Adapter, bool) {
	a, ok := r.adapters[name]
	return a, ok
}

// All returns the registered adapters sorted by name.
func (r *Registry) All() []Adapter {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)

	adapters := make([]Adapter, len(names))
	for i, name := range names {
		adapters[i] = r.adapters[name]
	}
	return adapters
}
