package rules

import (
	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/errors"
)

// Set holds the ordered rule tables for one site. Immutable after load and
// safe for concurrent readers.
type Set struct {
	Compilation []CompilationRule
	Routing     []RoutingRule
	Layouts     []LayoutRule
}

// Empty reports whether the set contains no rules at all.
func (s *Set) Empty() bool {
	return s == nil ||
		(len(s.Compilation) == 0 && len(s.Routing) == 0 && len(s.Layouts) == 0)
}

func normalizeRepName(name string) string {
	if name == "" {
		return content.DefaultRepName
	}
	return name
}

// CompilationRuleFor returns the first compilation rule matching the rep, in
// declaration order.
func (s *Set) CompilationRuleFor(rep *content.Rep) (*CompilationRule, error) {
	repName := normalizeRepName(rep.Name)
	for i := range s.Compilation {
		rule := &s.Compilation[i]
		if normalizeRepName(rule.RepName) != repName {
			continue
		}
		if rule.Pattern.Match(rep.Item.Identifier) {
			return rule, nil
		}
	}
	return nil, errors.NoMatchingCompilationRule(rep.String())
}

// RoutingRuleFor returns the first routing rule matching the rep, in
// declaration order.
func (s *Set) RoutingRuleFor(rep *content.Rep) (*RoutingRule, error) {
	repName := normalizeRepName(rep.Name)
	for i := range s.Routing {
		rule := &s.Routing[i]
		if normalizeRepName(rule.RepName) != repName {
			continue
		}
		if rule.Pattern.Match(rep.Item.Identifier) {
			return rule, nil
		}
	}
	return nil, errors.NoMatchingRoutingRule(rep.String())
}

// LayoutFilterFor resolves the filter bound to a layout. Exactly one layout
// rule must match; zero or multiple matches fail with the identifiers
// involved, never a tie-break.
func (s *Set) LayoutFilterFor(layout *content.Layout) (FilterBinding, error) {
	var matches []*LayoutRule
	for i := range s.Layouts {
		rule := &s.Layouts[i]
		if rule.Pattern.Match(layout.Identifier) {
			matches = append(matches, rule)
		}
	}
	if len(matches) == 1 {
		return FilterBinding{
			FilterName: matches[0].FilterName,
			FilterArgs: matches[0].FilterArgs,
		}, nil
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.FilterName)
	}
	return FilterBinding{}, errors.CannotDetermineFilter(layout.Identifier, names)
}

// RepNamesFor returns the distinct representation names declared for an item
// by the compilation rules, in declaration order. Items matched by no rule
// still get the default rep so the missing-rule error surfaces at compile
// time with the rep identified.
func (s *Set) RepNamesFor(item *content.Item) []string {
	seen := make(map[string]bool)
	var names []string
	for i := range s.Compilation {
		rule := &s.Compilation[i]
		if !rule.Pattern.Match(item.Identifier) {
			continue
		}
		name := normalizeRepName(rule.RepName)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		names = append(names, content.DefaultRepName)
	}
	return names
}
