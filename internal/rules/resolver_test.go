package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/errors"
)

func defaultRep(identifier string) *content.Rep {
	return content.NewRep(content.NewTextualItem(identifier, "", nil), content.DefaultRepName)
}

func TestCompilationRuleFirstMatchWins(t *testing.T) {
	set := &Set{
		Compilation: []CompilationRule{
			{Pattern: MustPattern("/articles/**"), Steps: []Step{FilterStep("markdown", nil)}},
			{Pattern: MustPattern("/**"), Steps: []Step{FilterStep("template", nil)}},
		},
	}

	rule, err := set.CompilationRuleFor(defaultRep("/articles/intro.md"))
	require.NoError(t, err)
	assert.Equal(t, "markdown", rule.Steps[0].FilterName)

	rule, err = set.CompilationRuleFor(defaultRep("/index.html"))
	require.NoError(t, err)
	assert.Equal(t, "template", rule.Steps[0].FilterName)
}

func TestCompilationRuleRespectsRepName(t *testing.T) {
	set := &Set{
		Compilation: []CompilationRule{
			{Pattern: MustPattern("/**"), RepName: "text", Steps: []Step{FilterStep("strip", nil)}},
			{Pattern: MustPattern("/**"), Steps: []Step{FilterStep("markdown", nil)}},
		},
	}

	item := content.NewTextualItem("/a.md", "", nil)

	rule, err := set.CompilationRuleFor(content.NewRep(item, "text"))
	require.NoError(t, err)
	assert.Equal(t, "strip", rule.Steps[0].FilterName)

	// The empty rep name on the second rule means "default".
	rule, err = set.CompilationRuleFor(content.NewRep(item, content.DefaultRepName))
	require.NoError(t, err)
	assert.Equal(t, "markdown", rule.Steps[0].FilterName)
}

func TestNoMatchingCompilationRule(t *testing.T) {
	set := &Set{
		Compilation: []CompilationRule{
			{Pattern: MustPattern("/articles/**")},
		},
	}

	_, err := set.CompilationRuleFor(defaultRep("/pages/about.md"))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNoMatchingCompilationRule))
	assert.Contains(t, err.Error(), "/pages/about.md (rep: default)")
}

func TestRoutingRuleResolution(t *testing.T) {
	set := &Set{
		Routing: []RoutingRule{
			{Pattern: MustPattern("/articles/**"), Route: "/${identifier}/index.html"},
			{Pattern: MustPattern("/**"), Route: ""},
		},
	}

	rule, err := set.RoutingRuleFor(defaultRep("/articles/intro.md"))
	require.NoError(t, err)
	assert.Equal(t, "/${identifier}/index.html", rule.Route)

	// Empty route is a valid outcome meaning "write nothing".
	rule, err = set.RoutingRuleFor(defaultRep("/drafts/wip.md"))
	require.NoError(t, err)
	assert.Equal(t, "", rule.Route)

	_, err = (&Set{}).RoutingRuleFor(defaultRep("/a.md"))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNoMatchingRoutingRule))
}

func TestLayoutFilterExactlyOneMatch(t *testing.T) {
	layout := content.NewLayout("/default.tmpl", "{{.Content}}")

	one := &Set{Layouts: []LayoutRule{
		{Pattern: MustPattern("/**"), FilterName: "template"},
	}}
	binding, err := one.LayoutFilterFor(layout)
	require.NoError(t, err)
	assert.Equal(t, "template", binding.FilterName)

	zero := &Set{Layouts: []LayoutRule{
		{Pattern: MustPattern("/other.tmpl"), FilterName: "template"},
	}}
	_, err = zero.LayoutFilterFor(layout)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindCannotDetermineFilter))

	two := &Set{Layouts: []LayoutRule{
		{Pattern: MustPattern("/**"), FilterName: "template"},
		{Pattern: MustPattern("/default.tmpl"), FilterName: "markdown"},
	}}
	_, err = two.LayoutFilterFor(layout)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindCannotDetermineFilter))
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestRepNamesFor(t *testing.T) {
	set := &Set{
		Compilation: []CompilationRule{
			{Pattern: MustPattern("/articles/**"), RepName: "summary"},
			{Pattern: MustPattern("/articles/**")},
			{Pattern: MustPattern("/articles/**"), RepName: "summary"},
		},
	}

	names := set.RepNamesFor(content.NewTextualItem("/articles/intro.md", "", nil))
	assert.Equal(t, []string{"summary", "default"}, names, "declaration order, duplicates collapsed")

	names = set.RepNamesFor(content.NewTextualItem("/unmatched.bin", "", nil))
	assert.Equal(t, []string{"default"}, names, "unmatched items still get a default rep")
}

func TestSetEmpty(t *testing.T) {
	assert.True(t, (*Set)(nil).Empty())
	assert.True(t, (&Set{}).Empty())
	assert.False(t, (&Set{Routing: []RoutingRule{{Pattern: MustPattern("/**")}}}).Empty())
}
