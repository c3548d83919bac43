package compile

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

// RouteOf resolves the output path for a rep via the routing rules. An empty
// route on a matching rule means the rep produces no output; a rep with no
// matching rule at all is a fatal error.
func (e *Engine) RouteOf(rep *content.Rep) (string, error) {
	rule, err := e.rules.RoutingRuleFor(rep)
	if err != nil {
		return "", err
	}
	if rule.Route == "" {
		return "", nil
	}

	route := rule.Route
	route = strings.ReplaceAll(route, "${identifier}", strings.Trim(rep.Item.Identifier, "/"))
	route = strings.ReplaceAll(route, "${rep}", rep.Name)
	return normalizeRoute(route), nil
}

// Routes resolves output paths for all reps, keyed by rep key. Reps routed
// to the empty path are omitted.
func (e *Engine) Routes() (map[string]string, error) {
	out := make(map[string]string)
	for _, rep := range e.state.reps() {
		route, err := e.RouteOf(rep)
		if err != nil {
			return nil, err
		}
		if route == "" {
			continue
		}
		out[rep.Key()] = route
	}
	return out, nil
}

// normalizeRoute slugifies each path segment while preserving the extension
// separator, and anchors the route at "/".
func normalizeRoute(route string) string {
	segments := strings.Split(strings.Trim(route, "/"), "/")
	for i, seg := range segments {
		segments[i] = slugifySegment(seg)
	}
	return "/" + strings.Join(segments, "/")
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// slugifySegment lowercases a path segment and strips diacritics so routes
// stay portable across filesystems.
func slugifySegment(seg string) string {
	stripped, _, err := transform.String(stripMarks, seg)
	if err != nil {
		stripped = seg
	}

	var b strings.Builder
	for _, r := range strings.ToLower(stripped) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return b.String()
}
