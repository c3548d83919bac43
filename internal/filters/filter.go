// Package filters defines the filter contract and the built-in filters that
// transform content during compilation. Each filter statically declares the
// content kind it accepts and produces; the engine enforces that contract at
// every application boundary.
package filters

import (
	"context"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

// Args carries the arguments declared for one filter application.
type Args map[string]any

// String retrieves a string argument.
func (a Args) String(key string) (string, bool) {
	if v, ok := a[key]; ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

// Services exposes compiler capabilities to filters. Reading another rep's
// compiled content re-enters the engine synchronously and records a
// dependency edge first.
type Services interface {
	// CompiledContentOf compiles (or returns the memoized content of) the
	// default rep of the item with the given identifier.
	CompiledContentOf(ctx context.Context, identifier string) (content.Content, error)

	// ItemMetadata returns the metadata of the item with the given
	// identifier without compiling it.
	ItemMetadata(identifier string) (content.Metadata, bool)
}

// Request carries the per-application context handed to a filter.
type Request struct {
	// Item and RepName identify the rep being compiled.
	Item    *content.Item
	RepName string

	// Args are the rule-declared arguments for this application.
	Args Args

	// Inner is set for layout applications: the rep content being wrapped,
	// while the filter input is the layout's raw content.
	Inner content.Content

	// Services is nil-safe for filters that never read other reps.
	Services Services
}

// Filter transforms content of its accepted kind into content of its
// produced kind. Implementations are black boxes to the engine beyond this
// contract.
type Filter interface {
	Name() string
	Accepts() content.Kind
	Produces() content.Kind
	Apply(ctx context.Context, c content.Content, req Request) (content.Content, error)
}
