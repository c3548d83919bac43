package compile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/incremental"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/rules"
)

func TestWriterWritesRoutedContent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil, nil)

	err := w.Write(context.Background(), "/articles/intro/index.html",
		content.Textual("<p>hi</p>"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "articles", "intro", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(data))
}

func TestWriterSkipsUnchangedOutput(t *testing.T) {
	dir := t.TempDir()
	store, err := incremental.Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	w := NewWriter(dir, store, metrics.NoopRecorder{})
	ctx := context.Background()

	require.NoError(t, w.Write(ctx, "/index.html", content.Textual("v1")))

	// Remove the file behind the writer's back; an unchanged hash means the
	// write is skipped and the file stays gone.
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.Remove(path))
	require.NoError(t, w.Write(ctx, "/index.html", content.Textual("v1")))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "unchanged output must not be rewritten")

	// Changed content writes again.
	require.NoError(t, w.Write(ctx, "/index.html", content.Textual("v2")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestWriteSite(t *testing.T) {
	dir := t.TempDir()
	items := []*content.Item{
		content.NewTextualItem("/page.md", "content here", nil),
		content.NewTextualItem("/hidden.md", "not routed", nil),
	}
	set := &rules.Set{
		Compilation: []rules.CompilationRule{
			{Pattern: rules.MustPattern("/**"), Steps: nil},
		},
		Routing: []rules.RoutingRule{
			{Pattern: rules.MustPattern("/hidden.md"), Route: ""},
			{Pattern: rules.MustPattern("/**"), Route: "/${identifier}/index.html"},
		},
	}

	e, err := NewEngine(items, nil, set, testRegistry(t))
	require.NoError(t, err)

	require.NoError(t, e.WriteSite(context.Background(), NewWriter(dir, nil, nil)))

	data, err := os.ReadFile(filepath.Join(dir, "page.md", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "content here", string(data))

	_, err = os.Stat(filepath.Join(dir, "hidden.md"))
	assert.True(t, os.IsNotExist(err), "unrouted reps produce no output")
}
