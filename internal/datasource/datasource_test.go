package datasource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/errors"
)

// stubSource serves fixed items and layouts.
type stubSource struct {
	name    string
	items   []*content.Item
	layouts []*content.Layout
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Items(context.Context) ([]*content.Item, error) {
	return s.items, nil
}

func (s *stubSource) Layouts(context.Context) ([]*content.Layout, error) {
	return s.layouts, nil
}

func TestRegistryCreateUnknownKind(t *testing.T) {
	r := DefaultRegistry()
	_, err := r.Create("carrier-pigeon", nil)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindUnknownDataSource))
}

func TestRegistryKinds(t *testing.T) {
	assert.Equal(t, []string{"filesystem", "git"}, DefaultRegistry().Kinds())
}

func TestRegistryRejectsDuplicateKind(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("x", NewFilesystemFromOptions))
	assert.Error(t, r.Register("x", NewFilesystemFromOptions))
}

func TestLoadAllAggregates(t *testing.T) {
	a := &stubSource{name: "a", items: []*content.Item{
		content.NewTextualItem("/a.md", "a", nil),
	}}
	b := &stubSource{name: "b",
		items:   []*content.Item{content.NewTextualItem("/b.md", "b", nil)},
		layouts: []*content.Layout{content.NewLayout("/default.tmpl", "{{.Content}}")},
	}

	items, layouts, err := LoadAll(context.Background(), []DataSource{a, b})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Len(t, layouts, 1)
}

func TestLoadAllRejectsDuplicateIdentifiers(t *testing.T) {
	a := &stubSource{name: "a", items: []*content.Item{
		content.NewTextualItem("/same.md", "a", nil),
	}}
	b := &stubSource{name: "b", items: []*content.Item{
		content.NewTextualItem("/same.md", "b", nil),
	}}

	_, _, err := LoadAll(context.Background(), []DataSource{a, b})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/same.md")
	assert.Contains(t, err.Error(), `"a"`)
	assert.Contains(t, err.Error(), `"b"`)
}

func TestFilesystemFromOptionsDefaults(t *testing.T) {
	src, err := NewFilesystemFromOptions(Options{"root": t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "filesystem", src.Name())
}

func TestGitFromOptionsRequiresURL(t *testing.T) {
	_, err := NewGitFromOptions(Options{})
	require.Error(t, err)
}
