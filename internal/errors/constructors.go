package errors

import (
	"fmt"
	"strings"
)

// UnknownDataSource reports a configured data source name with no registered
// adapter.
func UnknownDataSource(name string) *Error {
	return New(KindUnknownDataSource,
		fmt.Sprintf("The data source %q is not registered", name)).
		WithContext("data_source", name)
}

// UnknownLayout reports a layout reference that matches no loaded layout.
func UnknownLayout(identifier string) *Error {
	return New(KindUnknownLayout,
		fmt.Sprintf("The site does not have a layout with identifier %q", identifier)).
		WithContext("layout", identifier)
}

// CannotDetermineFilter reports a layout matched by zero or by multiple
// filter-association rules. Matches carries the names of the candidate
// filters (empty for the zero-match case).
func CannotDetermineFilter(layoutIdentifier string, matches []string) *Error {
	msg := fmt.Sprintf("The filter to be used for the %q layout could not be determined", layoutIdentifier)
	if len(matches) > 1 {
		msg = fmt.Sprintf("The filter for the %q layout is ambiguous (candidates: %s)",
			layoutIdentifier, strings.Join(matches, ", "))
	}
	return New(KindCannotDetermineFilter, msg).
		WithContext("layout", layoutIdentifier).
		WithContext("candidates", matches)
}

// DependencyCycle reports a dependency loop. The ring is the ordered list of
// rep descriptions forming the closed cycle, first element repeated at the
// end conceptually; CycleMessage renders the 1-indexed ring.
func DependencyCycle(ring []string) *Error {
	return New(KindDependencyCycle, CycleMessage(ring)).
		WithContext("cycle", ring)
}

// CycleMessage renders a cycle ring as a numbered closed loop, e.g.
// "(1) b → (2) c → (1) b". The ring argument holds the distinct members in
// traversal order; the first member closes the loop.
func CycleMessage(ring []string) string {
	if len(ring) == 0 {
		return "The site cannot be compiled: a dependency cycle was detected"
	}
	parts := make([]string, 0, len(ring)+1)
	for i, member := range ring {
		parts = append(parts, fmt.Sprintf("(%d) %s", i+1, member))
	}
	parts = append(parts, fmt.Sprintf("(1) %s", ring[0]))
	return "The site cannot be compiled: a dependency cycle was detected: " +
		strings.Join(parts, " → ")
}

// NoRulesFileFound reports a missing rules section/file.
func NoRulesFileFound() *Error {
	return New(KindNoRulesFileFound, "No rules were found for this site")
}

// NoMatchingCompilationRule reports an item representation not covered by any
// compilation rule.
func NoMatchingCompilationRule(repDescription string) *Error {
	return New(KindNoMatchingCompilationRule,
		fmt.Sprintf("No compilation rules were found for %s", repDescription)).
		WithContext("rep", repDescription)
}

// NoMatchingRoutingRule reports an item representation not covered by any
// routing rule.
func NoMatchingRoutingRule(repDescription string) *Error {
	return New(KindNoMatchingRoutingRule,
		fmt.Sprintf("No routing rules were found for %s", repDescription)).
		WithContext("rep", repDescription)
}

// CannotLayoutBinaryItem reports a layout step applied to a binary rep.
func CannotLayoutBinaryItem(repDescription string) *Error {
	return New(KindCannotLayoutBinaryItem,
		fmt.Sprintf("The rep %s cannot be laid out because it is binary", repDescription)).
		WithContext("rep", repDescription)
}

// CannotUseTextualFilter reports a textual filter applied to binary content.
func CannotUseTextualFilter(filterName, repDescription string) *Error {
	return New(KindCannotUseTextualFilter,
		fmt.Sprintf("The textual filter %q cannot be applied to the binary content of %s", filterName, repDescription)).
		WithContext("filter", filterName).
		WithContext("rep", repDescription)
}

// CannotUseBinaryFilter reports a binary filter applied to textual content.
func CannotUseBinaryFilter(filterName, repDescription string) *Error {
	return New(KindCannotUseBinaryFilter,
		fmt.Sprintf("The binary filter %q cannot be applied to the textual content of %s", filterName, repDescription)).
		WithContext("filter", filterName).
		WithContext("rep", repDescription)
}

// AmbiguousMetadataAssociation reports multiple metadata candidates for one
// content file in a data source.
func AmbiguousMetadataAssociation(contentPath string, candidates []string) *Error {
	return New(KindAmbiguousMetadataAssociation,
		fmt.Sprintf("The metadata for %q is ambiguous (candidates: %s)",
			contentPath, strings.Join(candidates, ", "))).
		WithContext("content_path", contentPath).
		WithContext("candidates", candidates)
}

// UnknownFilter reports a rule referencing a filter name with no registered
// implementation.
func UnknownFilter(name string) *Error {
	return New(KindUnknownFilter,
		fmt.Sprintf("The requested filter is not available (%s)", name)).
		WithContext("filter", name)
}

// UnknownItem reports a content reference to an item identifier that does
// not exist in the loaded site.
func UnknownItem(identifier string) *Error {
	return New(KindUnknownItem,
		fmt.Sprintf("The site does not have an item with identifier %q", identifier)).
		WithContext("item", identifier)
}

// Compilation wraps err with the rep that was being compiled when it
// occurred. Context accumulates as the error propagates up through
// re-entrant compilation calls; RootCause recovers the origin.
func Compilation(repDescription string, err error) *Error {
	return Wrap(err, KindCompilation,
		fmt.Sprintf("An error occurred while compiling %s", repDescription)).
		WithContext("rep", repDescription)
}

// Internal reports an invariant violation that should be unreachable.
func Internal(message string) *Error {
	return New(KindInternal, message)
}

// Internalf reports an invariant violation with formatting.
func Internalf(format string, args ...any) *Error {
	return Internal(fmt.Sprintf(format, args...))
}
