package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderCounters(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.RepCompiled(10 * time.Millisecond)
	r.RepCompiled(20 * time.Millisecond)
	r.RepMemoized()
	r.DependencyRecorded()
	r.CycleDetected()
	r.OutputWritten(128, false)
	r.OutputWritten(0, true)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.repsCompiled))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.repsMemoized))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.depEdges))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cycles))
	assert.Equal(t, 128.0, testutil.ToFloat64(r.outputBytes))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.outputsSkipped))
}

func TestPrometheusRecorderHistograms(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.FilterApplied("markdown", 5*time.Millisecond)
	r.RunCompleted(3, time.Second, false)
	r.RunCompleted(1, time.Second, true)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["sitegen_filter_apply_seconds"])
	assert.True(t, names["sitegen_run_seconds"])
}

func TestNoopRecorderIsRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.RepCompiled(0)
	r.RunCompleted(0, 0, false)
}
