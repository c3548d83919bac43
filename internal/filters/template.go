package filters

import (
	"context"
	stderrors "errors"
	"strings"
	"text/template"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/errors"
)

// TemplateFilter evaluates its input as a Go text/template. It serves both
// as a step filter over item content and as the filter bound to layouts (the
// layout body is the template, the wrapped rep content is exposed as
// .Content).
//
// Template data:
//
//	.Content   — the inner content for layout applications, else the input
//	.Item      — identifier and metadata of the rep's item
//	metadata k — metadata lookup on the current item
//	compiled i — compiled content of another item's default rep; this is a
//	             dependency-generating, re-entrant call into the engine
type TemplateFilter struct{}

func (f *TemplateFilter) Name() string           { return "template" }
func (f *TemplateFilter) Accepts() content.Kind  { return content.KindTextual }
func (f *TemplateFilter) Produces() content.Kind { return content.KindTextual }

type templateItem struct {
	Identifier string
	Metadata   content.Metadata
}

type templateData struct {
	Content string
	Item    templateItem
	Rep     string
}

func (f *TemplateFilter) Apply(ctx context.Context, c content.Content, req Request) (content.Content, error) {
	funcs := template.FuncMap{
		"metadata": func(key string) any {
			if req.Item == nil {
				return nil
			}
			return req.Item.Metadata[key]
		},
		"compiled": func(identifier string) (string, error) {
			if req.Services == nil {
				return "", errors.Internal("template filter has no compiler services")
			}
			dep, err := req.Services.CompiledContentOf(ctx, identifier)
			if err != nil {
				return "", err
			}
			return dep.Text(), nil
		},
	}

	tmpl, err := template.New(f.Name()).Funcs(funcs).Parse(c.Text())
	if err != nil {
		return content.Content{}, errors.Wrap(err, errors.KindInternal, "template parse failed")
	}

	data := templateData{
		Content: req.Inner.Text(),
		Rep:     req.RepName,
	}
	if req.Item != nil {
		data.Item = templateItem{Identifier: req.Item.Identifier, Metadata: req.Item.Metadata}
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		// A failing dependency read surfaces here; keep the taxonomy error
		// as the cause rather than flattening it into template noise.
		var se *errors.Error
		if stderrors.As(err, &se) {
			return content.Content{}, se
		}
		return content.Content{}, errors.Wrap(err, errors.KindInternal, "template execution failed")
	}
	return content.Textual(b.String()), nil
}
