// Package content defines the value types that flow through the compiler:
// items, item representations, layouts, and the binary/textual content union.
package content

// Kind distinguishes the two content payload forms.
type Kind string

const (
	KindTextual Kind = "textual"
	KindBinary  Kind = "binary"
)

// Content is a closed two-variant union: textual (string) or binary (bytes).
// The zero value is empty textual content.
type Content struct {
	kind Kind
	text string
	data []byte
}

// Textual creates textual content.
func Textual(s string) Content {
	return Content{kind: KindTextual, text: s}
}

// Binary creates binary content. The byte slice is not copied; callers must
// not mutate it after handoff.
func Binary(b []byte) Content {
	return Content{kind: KindBinary, data: b}
}

// Kind returns the content kind.
func (c Content) Kind() Kind {
	if c.kind == "" {
		return KindTextual
	}
	return c.kind
}

// IsBinary reports whether the content is binary.
func (c Content) IsBinary() bool {
	return c.Kind() == KindBinary
}

// Text returns the textual payload. Valid only for textual content; binary
// content yields the empty string.
func (c Content) Text() string {
	return c.text
}

// Bytes returns the raw payload regardless of kind.
func (c Content) Bytes() []byte {
	if c.IsBinary() {
		return c.data
	}
	return []byte(c.text)
}
