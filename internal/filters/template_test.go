package filters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/errors"
)

// fakeServices satisfies Services with a canned lookup table.
type fakeServices struct {
	compiled map[string]string
	meta     map[string]content.Metadata
}

func (s *fakeServices) CompiledContentOf(_ context.Context, identifier string) (content.Content, error) {
	if text, ok := s.compiled[identifier]; ok {
		return content.Textual(text), nil
	}
	return content.Content{}, errors.UnknownItem(identifier)
}

func (s *fakeServices) ItemMetadata(identifier string) (content.Metadata, bool) {
	m, ok := s.meta[identifier]
	return m, ok
}

func TestTemplateRendersDataAndFuncs(t *testing.T) {
	f := &TemplateFilter{}
	item := content.NewTextualItem("/page.md", "", content.Metadata{"title": "My Page"})

	out, err := f.Apply(context.Background(),
		content.Textual(`{{metadata "title"}}|{{.Content}}|{{.Rep}}|{{.Item.Identifier}}`),
		Request{
			Item:    item,
			RepName: "default",
			Inner:   content.Textual("inner body"),
		})
	require.NoError(t, err)
	assert.Equal(t, "My Page|inner body|default|/page.md", out.Text())
}

func TestTemplateCompiledFunc(t *testing.T) {
	f := &TemplateFilter{}
	svc := &fakeServices{compiled: map[string]string{"/other.md": "OTHER"}}

	out, err := f.Apply(context.Background(),
		content.Textual(`before {{compiled "/other.md"}} after`),
		Request{Services: svc})
	require.NoError(t, err)
	assert.Equal(t, "before OTHER after", out.Text())
}

func TestTemplateCompiledFuncKeepsTaxonomyError(t *testing.T) {
	f := &TemplateFilter{}
	svc := &fakeServices{}

	_, err := f.Apply(context.Background(),
		content.Textual(`{{compiled "/missing.md"}}`),
		Request{Services: svc})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindUnknownItem),
		"the structured error must survive template execution")
}

func TestTemplateParseError(t *testing.T) {
	f := &TemplateFilter{}
	_, err := f.Apply(context.Background(), content.Textual(`{{unclosed`), Request{})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindInternal))
}

func TestTemplateCompiledWithoutServices(t *testing.T) {
	f := &TemplateFilter{}
	_, err := f.Apply(context.Background(),
		content.Textual(`{{compiled "/x.md"}}`), Request{})
	require.Error(t, err)
}
