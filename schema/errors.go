package schema

import "fmt"

// RecursiveSchemaError reports a $defs cycle encountered while
// flattening. Self-referential schemas cannot be inlined into a finite
// tree, so the error is raised instead of truncating silently.
type RecursiveSchemaError struct {
	Name string
}

func (e *RecursiveSchemaError) Error() string {
	return fmt.Sprintf("cannot flatten recursive definition %q", e.Name)
}

// ValidationError reports input that fails schema validation. Path
// identifies the offending field ("a.b.0.c" for nested values) and
// Reason says what was expected.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input at %q: %s", e.Path, e.Reason)
}
