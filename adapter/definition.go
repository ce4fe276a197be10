package adapter

import (
	"strings"

	"github.com/i2y/tooladapt/typeexpr"
)

// renderDefinition reconstructs a readable signature for the adapted
// object — name, fields with type annotations and defaults in
// declaration order — followed by the original documentation block.
// The output is deterministic and independent of any schema artifact.
func renderDefinition(name string, fields []typeexpr.Field, doc string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(f.Type.String())
		if f.Default != nil {
			b.WriteString(" = ")
			b.WriteString(typeexpr.Repr(f.Default))
		}
	}
	b.WriteByte(')')

	if doc = strings.TrimSpace(doc); doc != "" {
		b.WriteString("\n\n")
		b.WriteString(doc)
	}
	return b.String()
}
