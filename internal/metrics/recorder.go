// Package metrics provides compilation metrics behind a Recorder interface.
// Components default to NoopRecorder so metrics stay zero-cost until a real
// implementation is injected.
package metrics

import "time"

// Recorder receives compilation events.
type Recorder interface {
	// RepCompiled records one finished rep compilation.
	RepCompiled(duration time.Duration)

	// RepMemoized records a memoization hit (no recompilation).
	RepMemoized()

	// FilterApplied records one filter application.
	FilterApplied(name string, duration time.Duration)

	// DependencyRecorded records one discovered dependency edge.
	DependencyRecorded()

	// CycleDetected records a fatal dependency cycle.
	CycleDetected()

	// RunCompleted records a whole compilation run.
	RunCompleted(reps int, duration time.Duration, failed bool)

	// OutputWritten records one routed output write.
	OutputWritten(bytes int, skipped bool)
}

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

func (NoopRecorder) RepCompiled(time.Duration)             {}
func (NoopRecorder) RepMemoized()                          {}
func (NoopRecorder) FilterApplied(string, time.Duration)   {}
func (NoopRecorder) DependencyRecorded()                   {}
func (NoopRecorder) CycleDetected()                        {}
func (NoopRecorder) RunCompleted(int, time.Duration, bool) {}
func (NoopRecorder) OutputWritten(int, bool)               {}
