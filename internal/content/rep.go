package content

import "fmt"

// DefaultRepName is the representation every item gets unless rules declare
// additional ones.
const DefaultRepName = "default"

// Snapshot names used by the compilation engine. Rules may reference
// additional named snapshots.
const (
	SnapshotRaw  = "raw"
	SnapshotPre  = "pre"
	SnapshotLast = "last"
)

// Rep is a named representation of an item: the unit of compilation. The
// engine appends snapshots as content moves through filters; nothing else
// mutates a rep, and no rep is mutated concurrently.
type Rep struct {
	Item *Item
	Name string

	snapshots map[string]Content
	finished  bool
}

// NewRep creates a representation of item seeded with a raw snapshot of the
// item's source content.
func NewRep(item *Item, name string) *Rep {
	return &Rep{
		Item: item,
		Name: name,
		snapshots: map[string]Content{
			SnapshotRaw: item.Content,
		},
	}
}

// Key returns the stable identity of the rep within a run.
func (r *Rep) Key() string {
	return r.Item.Identifier + "#" + r.Name
}

// String renders the rep for diagnostics, e.g. "/about/ (rep: default)".
func (r *Rep) String() string {
	return fmt.Sprintf("%s (rep: %s)", r.Item.Identifier, r.Name)
}

// Binary reports whether the underlying item is binary.
func (r *Rep) Binary() bool {
	return r.Item.Binary()
}

// Snapshot returns the content stored under name.
func (r *Rep) Snapshot(name string) (Content, bool) {
	c, ok := r.snapshots[name]
	return c, ok
}

// SetSnapshot stores content under name, overwriting any previous value.
func (r *Rep) SetSnapshot(name string, c Content) {
	if r.snapshots == nil {
		r.snapshots = make(map[string]Content)
	}
	r.snapshots[name] = c
}

// Finished reports whether compilation produced a final snapshot this run.
func (r *Rep) Finished() bool {
	return r.finished
}

// MarkFinished records the final compiled content under the last snapshot.
func (r *Rep) MarkFinished(final Content) {
	r.SetSnapshot(SnapshotLast, final)
	r.finished = true
}

// CompiledContent returns the final compiled content. It is only valid after
// MarkFinished.
func (r *Rep) CompiledContent() (Content, bool) {
	if !r.finished {
		return Content{}, false
	}
	c, ok := r.snapshots[SnapshotLast]
	return c, ok
}
