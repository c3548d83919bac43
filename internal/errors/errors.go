// Package errors provides the structured error taxonomy for the compiler.
// Every failure surfaced by the engine is one of a closed set of kinds with
// a structured payload, never a bare string.
package errors

import (
	"errors"
	"fmt"
)

// Kind identifies a compiler failure condition.
type Kind string

const (
	// Operator-facing conditions (content or rules need fixing).
	KindUnknownDataSource            Kind = "unknown_data_source"
	KindUnknownLayout                Kind = "unknown_layout"
	KindCannotDetermineFilter        Kind = "cannot_determine_filter"
	KindDependencyCycle              Kind = "dependency_cycle"
	KindNoRulesFileFound             Kind = "no_rules_file_found"
	KindNoMatchingCompilationRule    Kind = "no_matching_compilation_rule"
	KindNoMatchingRoutingRule        Kind = "no_matching_routing_rule"
	KindCannotLayoutBinaryItem       Kind = "cannot_layout_binary_item"
	KindCannotUseTextualFilter       Kind = "cannot_use_textual_filter"
	KindCannotUseBinaryFilter        Kind = "cannot_use_binary_filter"
	KindAmbiguousMetadataAssociation Kind = "ambiguous_metadata_association"
	KindUnknownFilter                Kind = "unknown_filter"
	KindUnknownItem                  Kind = "unknown_item"

	// KindCompilation wraps another failure with the rep that was being
	// compiled when it occurred.
	KindCompilation Kind = "compilation"

	// KindInternal marks invariant violations that should be unreachable.
	KindInternal Kind = "internal"
)

// Severity indicates how critical an error is.
type Severity string

const (
	SeverityFatal Severity = "fatal"
	SeverityError Severity = "error"
)

// ContextFields carries structured context for an Error.
type ContextFields map[string]any

// Error is a structured compiler error. Trivial errors are operator mistakes
// that warrant a short user-facing message rather than a crash report.
type Error struct {
	Kind     Kind          `json:"kind"`
	Severity Severity      `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Trivial  bool          `json:"trivial"`
	Context  ContextFields `json:"context,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext attaches a context value and returns the error for chaining.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a structured error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Severity: SeverityFatal, Message: message, Trivial: trivialByDefault(kind)}
}

// Wrap creates a structured error wrapping a cause.
func Wrap(err error, kind Kind, message string) *Error {
	e := New(kind, message)
	e.Cause = err
	return e
}

// trivialByDefault marks operator mistakes; internal inconsistencies and
// wrappers are treated as bugs until proven otherwise.
func trivialByDefault(kind Kind) bool {
	switch kind {
	case KindInternal, KindCompilation:
		return false
	default:
		return true
	}
}

// KindOf extracts the kind from an error, unwrapping as needed. Non-taxonomy
// errors report KindInternal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// IsKind reports whether err (or anything it wraps) is of the given kind.
func IsKind(err error, kind Kind) bool {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if se, ok := e.(*Error); ok && se.Kind == kind {
			return true
		}
	}
	return false
}

// IsTrivial reports whether err is an operator mistake suited to a short
// message. A compilation wrapper is trivial when its root cause is.
func IsTrivial(err error) bool {
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	if se.Kind == KindCompilation && se.Cause != nil {
		return IsTrivial(se.Cause)
	}
	return se.Trivial
}

// RootCause unwraps through compilation wrappers to the originating error.
func RootCause(err error) error {
	for {
		se, ok := err.(*Error)
		if !ok || se.Kind != KindCompilation || se.Cause == nil {
			return err
		}
		err = se.Cause
	}
}
