// Package rules models the ordered rule tables that drive compilation:
// which filters an item representation passes through, where its output is
// routed, and which filter renders each layout. Rule order is significant
// and user-visible; resolution is always first match wins.
package rules

// Args carries filter arguments declared on a rule step.
type Args map[string]any

// StepKind distinguishes the actions in a compilation rule's sequence.
type StepKind string

const (
	StepFilter   StepKind = "filter"
	StepLayout   StepKind = "layout"
	StepSnapshot StepKind = "snapshot"
)

// Step is one action in a compilation rule: apply a named filter, pass the
// content through a layout, or record a named snapshot.
type Step struct {
	Kind StepKind

	// Filter step fields.
	FilterName string
	FilterArgs Args

	// Layout step field: the layout identifier (may itself be a glob that
	// resolves against loaded layouts, but is typically exact).
	LayoutIdentifier string

	// Snapshot step field.
	SnapshotName string
}

// FilterStep builds a filter application step.
func FilterStep(name string, args Args) Step {
	return Step{Kind: StepFilter, FilterName: name, FilterArgs: args}
}

// LayoutStep builds a layout application step.
func LayoutStep(layoutIdentifier string) Step {
	return Step{Kind: StepLayout, LayoutIdentifier: layoutIdentifier}
}

// SnapshotStep builds a snapshot recording step.
func SnapshotStep(name string) Step {
	return Step{Kind: StepSnapshot, SnapshotName: name}
}

// CompilationRule maps matching item representations to an action sequence.
// RepName selects which representation the rule governs; empty means the
// default rep.
type CompilationRule struct {
	Pattern Pattern
	RepName string
	Steps   []Step
}

// RoutingRule maps matching item representations to an output path template.
// The template may reference ${identifier} and ${rep}; an empty template
// means "do not write output for this rep".
type RoutingRule struct {
	Pattern Pattern
	RepName string
	Route   string
}

// LayoutRule binds layouts matching Pattern to a named filter.
type LayoutRule struct {
	Pattern    Pattern
	FilterName string
	FilterArgs Args
}

// FilterBinding is the resolved filter for a layout.
type FilterBinding struct {
	FilterName string
	FilterArgs Args
}
