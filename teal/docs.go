package teal

import (
	"strings"
)

// ParagraphSeparator joins documentation fragments that target the same
// member or the same pending buffer.
const ParagraphSeparator = "\n"

// NoDocumentation is returned by Help for keys without documentation.
const NoDocumentation = "No documentation found."

// Documentation binds free-floating documentation text to the next
// registered member. The zero value is ready to use.
type Documentation struct {
	pending    string
	hasPending bool
	entries    map[string]string
	order      []string
	typeDoc    string
}

// Document appends text to the pending buffer. The buffer is attached to the
// next name passed to Commit.
func (d *Documentation) Document(text string) {
	if d.hasPending && d.pending != "" {
		d.pending += ParagraphSeparator + text
	} else {
		d.pending = text
	}
	d.hasPending = true
}

// Commit moves the pending buffer into the entry for name and resets it.
// An existing entry gets the new text appended as another paragraph.
// Commit does nothing when no documentation is pending.
func (d *Documentation) Commit(name string) {
	if !d.hasPending {
		return
	}
	text := d.pending
	d.pending = ""
	d.hasPending = false

	if d.entries == nil {
		d.entries = make(map[string]string)
	}
	if existing, ok := d.entries[name]; ok {
		d.entries[name] = existing + ParagraphSeparator + text
		return
	}
	d.entries[name] = text
	d.order = append(d.order, name)
}

// DocumentType appends text to the type-level documentation.
func (d *Documentation) DocumentType(text string) {
	if d.typeDoc != "" {
		d.typeDoc += ParagraphSeparator + text
		return
	}
	d.typeDoc = text
}

// Pending returns the uncommitted documentation, if any.
func (d *Documentation) Pending() (string, bool) {
	return d.pending, d.hasPending
}

// takePending removes the pending buffer and returns it.
func (d *Documentation) takePending() (string, bool) {
	text, ok := d.pending, d.hasPending
	d.pending, d.hasPending = "", false
	return text, ok
}

// Lookup returns the committed documentation for name.
func (d *Documentation) Lookup(name string) (string, bool) {
	text, ok := d.entries[name]
	return text, ok
}

// Keys returns the documented names in the order they were first committed.
func (d *Documentation) Keys() []string {
	keys := make([]string, len(d.order))
	copy(keys, d.order)
	return keys
}

// TypeDoc returns the type-level documentation.
func (d *Documentation) TypeDoc() string {
	return d.typeDoc
}

// Help answers a runtime help query. An empty key yields the type
// documentation followed by the list of documented names; a known key yields
// its entry; anything else yields NoDocumentation.
func (d *Documentation) Help(key string) string {
	if key == "" {
		var b strings.Builder
		b.WriteString(d.typeDoc)
		if len(d.order) > 0 {
			if d.typeDoc != "" {
				b.WriteString("\n\n")
			}
			b.WriteString("The following items have documentation:")
			for _, k := range d.order {
				b.WriteString("\n")
				b.WriteString(k)
			}
		}
		return b.String()
	}
	if text, ok := d.entries[key]; ok {
		return text
	}
	return NoDocumentation
}

// writeComment writes text as one comment line per physical line.
func writeComment(b *strings.Builder, indent, text string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(indent)
		b.WriteString("--")
		b.WriteString(line)
		b.WriteString("\n")
	}
}
