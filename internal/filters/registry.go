package filters

import (
	"sort"
	"sync"

	"git.home.luguber.info/inful/sitegen/internal/errors"
)

// Registry manages filter registration and lookup by name.
type Registry struct {
	mu      sync.RWMutex
	filters map[string]Filter
}

// NewRegistry creates a new empty filter registry.
func NewRegistry() *Registry {
	return &Registry{filters: make(map[string]Filter)}
}

// DefaultRegistry returns a registry pre-populated with the built-in
// filters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, f := range builtins() {
		// Built-ins have unique names; a collision is a programming error.
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a filter to the registry. Registering a duplicate name or a
// nil filter fails.
func (r *Registry) Register(f Filter) error {
	if f == nil {
		return errors.Internal("cannot register nil filter")
	}
	name := f.Name()
	if name == "" {
		return errors.Internal("cannot register filter with empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.filters[name]; exists {
		return errors.Internalf("filter %q already registered", name)
	}
	r.filters[name] = f
	return nil
}

// Get retrieves a filter by name.
func (r *Registry) Get(name string) (Filter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.filters[name]
	if !ok {
		return nil, errors.UnknownFilter(name)
	}
	return f, nil
}

// Has checks whether a filter with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.filters[name]
	return ok
}

// Names returns the sorted names of all registered filters.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func builtins() []Filter {
	return []Filter{
		&MarkdownFilter{},
		&TemplateFilter{},
		&RelativizeFilter{},
		&FrontmatterStripFilter{},
		&BinaryCopyFilter{},
	}
}
