// Package datasource aggregates the pluggable adapters that load site
// content. A data source supplies items and layouts with unique
// identifiers; everything else about where the content lives is the
// adapter's business.
package datasource

import (
	"context"
	"sort"
	"sync"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/errors"
)

// DataSource loads items and layouts from one backing location.
type DataSource interface {
	// Name identifies the adapter kind (e.g. "filesystem", "git").
	Name() string

	// Items loads all items. Identifiers must be unique within the source.
	Items(ctx context.Context) ([]*content.Item, error)

	// Layouts loads all layouts.
	Layouts(ctx context.Context) ([]*content.Layout, error)
}

// Options carries adapter-specific configuration from the site config.
type Options map[string]any

// String retrieves a string option.
func (o Options) String(key string) (string, bool) {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

// Factory constructs a data source from its configured options.
type Factory func(opts Options) (DataSource, error)

// Registry maps data source kind names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry with the built-in adapters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("filesystem", NewFilesystemFromOptions)
	r.MustRegister("git", NewGitFromOptions)
	return r
}

// Register adds a factory under a kind name.
func (r *Registry) Register(kind string, factory Factory) error {
	if factory == nil {
		return errors.Internal("cannot register nil data source factory")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[kind]; exists {
		return errors.Internalf("data source kind %q already registered", kind)
	}
	r.factories[kind] = factory
	return nil
}

// MustRegister registers a factory and panics on error. For built-ins.
func (r *Registry) MustRegister(kind string, factory Factory) {
	if err := r.Register(kind, factory); err != nil {
		panic(err)
	}
}

// Create instantiates the data source of the given kind. An unregistered
// kind is a typed error, not a fallback.
func (r *Registry) Create(kind string, opts Options) (DataSource, error) {
	r.mu.RLock()
	factory, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.UnknownDataSource(kind)
	}
	return factory(opts)
}

// Kinds returns the sorted registered kind names.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// LoadAll gathers items and layouts from several sources, enforcing
// identifier uniqueness across the aggregate.
func LoadAll(ctx context.Context, sources []DataSource) ([]*content.Item, []*content.Layout, error) {
	var items []*content.Item
	var layouts []*content.Layout
	seenItems := make(map[string]string)
	seenLayouts := make(map[string]string)

	for _, src := range sources {
		loaded, err := src.Items(ctx)
		if err != nil {
			return nil, nil, err
		}
		for _, item := range loaded {
			if prev, dup := seenItems[item.Identifier]; dup {
				return nil, nil, errors.Internalf(
					"item identifier %q supplied by both %q and %q", item.Identifier, prev, src.Name())
			}
			seenItems[item.Identifier] = src.Name()
			items = append(items, item)
		}

		loadedLayouts, err := src.Layouts(ctx)
		if err != nil {
			return nil, nil, err
		}
		for _, layout := range loadedLayouts {
			if prev, dup := seenLayouts[layout.Identifier]; dup {
				return nil, nil, errors.Internalf(
					"layout identifier %q supplied by both %q and %q", layout.Identifier, prev, src.Name())
			}
			seenLayouts[layout.Identifier] = src.Name()
			layouts = append(layouts, layout)
		}
	}
	return items, layouts, nil
}
