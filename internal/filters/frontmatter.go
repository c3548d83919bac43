package filters

import (
	"context"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/errors"
)

// FrontmatterStripFilter removes a leading YAML frontmatter block from
// textual content. Data sources normally lift frontmatter into item
// metadata at load time; this filter covers content that arrives with the
// block still inline.
type FrontmatterStripFilter struct{}

func (f *FrontmatterStripFilter) Name() string           { return "frontmatterstrip" }
func (f *FrontmatterStripFilter) Accepts() content.Kind  { return content.KindTextual }
func (f *FrontmatterStripFilter) Produces() content.Kind { return content.KindTextual }

func (f *FrontmatterStripFilter) Apply(_ context.Context, c content.Content, _ Request) (content.Content, error) {
	body, meta, err := SplitFrontmatter(c.Text())
	if err != nil {
		return content.Content{}, err
	}
	_ = meta
	return content.Textual(body), nil
}

// SplitFrontmatter separates a leading "---" delimited YAML block from the
// body. Content without a block is returned unchanged with nil metadata.
// A malformed block (unterminated or invalid YAML) is an error; silently
// shipping frontmatter into output has caused enough confusion.
func SplitFrontmatter(text string) (body string, meta map[string]any, err error) {
	if !strings.HasPrefix(text, "---\n") && !strings.HasPrefix(text, "---\r\n") {
		return text, nil, nil
	}

	lines := strings.SplitAfter(text, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") != "---" {
			continue
		}
		block := strings.Join(lines[1:i], "")
		body = strings.Join(lines[i+1:], "")

		if strings.TrimSpace(block) == "" {
			return body, nil, nil
		}
		meta = make(map[string]any)
		if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
			return "", nil, errors.Wrap(err, errors.KindInternal, "invalid frontmatter YAML")
		}
		return body, meta, nil
	}
	return "", nil, errors.Internal("unterminated frontmatter block")
}
