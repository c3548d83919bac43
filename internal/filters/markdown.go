package filters

import (
	"bytes"
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/errors"
)

// MarkdownFilter renders Markdown to HTML with Goldmark. Textual in, textual
// out. The "gfm" arg enables GitHub Flavored Markdown extensions.
type MarkdownFilter struct{}

func (f *MarkdownFilter) Name() string           { return "markdown" }
func (f *MarkdownFilter) Accepts() content.Kind  { return content.KindTextual }
func (f *MarkdownFilter) Produces() content.Kind { return content.KindTextual }

func (f *MarkdownFilter) Apply(_ context.Context, c content.Content, req Request) (content.Content, error) {
	opts := []goldmark.Option{}
	if gfm, _ := req.Args["gfm"].(bool); gfm {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	md := goldmark.New(opts...)

	var buf bytes.Buffer
	if err := md.Convert([]byte(c.Text()), &buf); err != nil {
		return content.Content{}, errors.Wrap(err, errors.KindInternal, "markdown conversion failed")
	}
	return content.Textual(buf.String()), nil
}
