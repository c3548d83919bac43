package rules

import (
	"regexp"
	"strings"
)

// Pattern matches path-like identifiers. Two glob forms are supported:
// "*" matches any run of characters within one segment and "**" matches
// across segments. A pattern without glob characters is an exact match.
type Pattern struct {
	raw   string
	exact bool
	re    *regexp.Regexp
}

// MustPattern compiles a pattern and panics on error. Intended for rule
// tables built from literals.
func MustPattern(raw string) Pattern {
	p, err := NewPattern(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPattern compiles an identifier glob.
func NewPattern(raw string) (Pattern, error) {
	if !strings.ContainsAny(raw, "*?[") {
		return Pattern{raw: raw, exact: true}, nil
	}

	var b strings.Builder
	b.WriteString("\\A")
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case '*':
			if i+1 < len(raw) && raw[i+1] == '*' {
				b.WriteString(".*")
				i++
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("\\z")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{raw: raw, re: re}, nil
}

// Match reports whether identifier matches the pattern.
func (p Pattern) Match(identifier string) bool {
	if p.exact {
		return p.raw == identifier
	}
	if p.re == nil {
		return false
	}
	return p.re.MatchString(identifier)
}

// String returns the source form of the pattern.
func (p Pattern) String() string {
	return p.raw
}
