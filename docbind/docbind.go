// Package docbind parses free-text documentation blocks into a summary
// and per-field descriptions.
//
// The grammar is a narrow field-tag syntax: everything before the first
// tag line is the summary, and lines of the form
//
//	:param name: description text
//
// bind a description to a field name. Continuation lines belong to the
// preceding tag. Binding is best effort by design — unknown tag forms
// are ignored, malformed lines are treated as plain text, and Parse
// never fails. Documentation enriches a schema; it is never a source of
// construction errors.
package docbind

import "strings"

// Doc is a parsed documentation block. Params maps field names to their
// description text; fields without a matching tag are simply absent, so
// lookups degrade to the empty string.
type Doc struct {
	Summary string
	Params  map[string]string
}

// Param returns the bound description for a field name, or "".
func (d Doc) Param(name string) string {
	return d.Params[name]
}

// Parse splits a documentation block into summary and field bindings.
// An empty block yields the zero Doc.
func Parse(text string) Doc {
	var doc Doc
	var summary []string
	current := ""   // field name whose description is being accumulated
	inTags := false // a tag line has been seen; the summary is closed

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if tag, body, ok := cutTag(trimmed); ok {
			inTags = true
			current = ""
			if tag != "param" {
				continue
			}
			name, desc, _ := strings.Cut(body, ":")
			if name = strings.TrimSpace(name); name == "" {
				continue
			}
			if doc.Params == nil {
				doc.Params = make(map[string]string)
			}
			doc.Params[name] = strings.TrimSpace(desc)
			current = name
			continue
		}

		if !inTags {
			summary = append(summary, line)
			continue
		}
		if current == "" || trimmed == "" {
			continue
		}
		// Continuation line for the open binding.
		if doc.Params[current] != "" {
			doc.Params[current] += " " + trimmed
		} else {
			doc.Params[current] = trimmed
		}
	}

	doc.Summary = strings.TrimSpace(strings.Join(summary, "\n"))
	return doc
}

// cutTag recognizes ":word rest:" tag lines, returning the tag word and
// the text between the colons plus everything after. Lines that merely
// start with a colon are not tags.
func cutTag(line string) (tag, body string, ok bool) {
	if !strings.HasPrefix(line, ":") {
		return "", "", false
	}
	rest := line[1:]
	head, after, found := strings.Cut(rest, ":")
	if !found {
		return "", "", false
	}
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return "", "", false
	}
	tag = fields[0]
	body = strings.TrimSpace(strings.TrimPrefix(head, tag)) + ":" + after
	return tag, body, true
}
