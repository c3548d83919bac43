package content

import "maps"

// Metadata carries arbitrary key/value attributes attached to an item.
type Metadata map[string]any

// Clone returns a shallow copy so callers can mutate without aliasing.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

// GetString retrieves a string attribute.
func (m Metadata) GetString(key string) (string, bool) {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

// Item is a single piece of source content identified by a path-like
// identifier (e.g. "/articles/intro/"). Items are immutable for the duration
// of a compilation run.
type Item struct {
	Identifier string
	Content    Content
	Metadata   Metadata
}

// NewTextualItem creates an item with textual content.
func NewTextualItem(identifier, text string, meta Metadata) *Item {
	return &Item{Identifier: identifier, Content: Textual(text), Metadata: meta}
}

// NewBinaryItem creates an item with binary content.
func NewBinaryItem(identifier string, data []byte, meta Metadata) *Item {
	return &Item{Identifier: identifier, Content: Binary(data), Metadata: meta}
}

// Binary reports whether the item's source content is binary.
func (i *Item) Binary() bool {
	return i.Content.IsBinary()
}

// Layout is a named piece of uncompiled textual template content.
type Layout struct {
	Identifier string
	Content    Content
}

// NewLayout creates a layout from raw textual content.
func NewLayout(identifier, raw string) *Layout {
	return &Layout{Identifier: identifier, Content: Textual(raw)}
}
