package filters

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/errors"
)

// RelativizeFilter rewrites site-absolute href/src attributes in HTML so the
// output works when served from a subdirectory. The "route" arg is the
// output path of the rep being compiled; link depth is derived from it.
type RelativizeFilter struct{}

func (f *RelativizeFilter) Name() string           { return "relativize" }
func (f *RelativizeFilter) Accepts() content.Kind  { return content.KindTextual }
func (f *RelativizeFilter) Produces() content.Kind { return content.KindTextual }

var relativizedAttrs = map[string]bool{
	"href": true,
	"src":  true,
}

func (f *RelativizeFilter) Apply(_ context.Context, c content.Content, req Request) (content.Content, error) {
	route, _ := req.Args.String("route")
	prefix := relativePrefix(route)

	doc, err := html.Parse(strings.NewReader(c.Text()))
	if err != nil {
		return content.Content{}, errors.Wrap(err, errors.KindInternal, "html parse failed")
	}

	var rewrite func(*html.Node)
	rewrite = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for i, attr := range n.Attr {
				if !relativizedAttrs[attr.Key] {
					continue
				}
				if strings.HasPrefix(attr.Val, "/") && !strings.HasPrefix(attr.Val, "//") {
					n.Attr[i].Val = prefix + strings.TrimPrefix(attr.Val, "/")
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			rewrite(child)
		}
	}
	rewrite(doc)

	var b strings.Builder
	if err := html.Render(&b, doc); err != nil {
		return content.Content{}, errors.Wrap(err, errors.KindInternal, "html render failed")
	}
	return content.Textual(b.String()), nil
}

// relativePrefix computes the "../" chain from an output route to the site
// root. "/a/b/index.html" sits two directories deep, so the prefix is
// "../../".
func relativePrefix(route string) string {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return "./"
	}
	depth := strings.Count(trimmed, "/")
	if depth == 0 {
		return "./"
	}
	return strings.Repeat("../", depth)
}
