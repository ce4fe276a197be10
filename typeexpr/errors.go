package typeexpr

import "fmt"

// UnsupportedFieldError reports a field or parameter whose type shape
// has no lowering rule. It is raised at adapter construction time and is
// fatal to constructing that adapter.
type UnsupportedFieldError struct {
	Field  string
	Reason string
}

func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("unsupported field %q: %s", e.Field, e.Reason)
}
