package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder on a Prometheus registry.
type PrometheusRecorder struct {
	repsCompiled   prom.Counter
	repsMemoized   prom.Counter
	repDuration    prom.Histogram
	filterDuration *prom.HistogramVec
	depEdges       prom.Counter
	cycles         prom.Counter
	runDuration    *prom.HistogramVec
	outputBytes    prom.Counter
	outputsSkipped prom.Counter
}

// NewPrometheusRecorder creates a recorder and registers its collectors on
// reg. A nil reg uses the default registerer.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	r := &PrometheusRecorder{
		repsCompiled: prom.NewCounter(prom.CounterOpts{
			Name: "sitegen_reps_compiled_total",
			Help: "Item representations compiled.",
		}),
		repsMemoized: prom.NewCounter(prom.CounterOpts{
			Name: "sitegen_reps_memoized_total",
			Help: "Memoized rep lookups that avoided recompilation.",
		}),
		repDuration: prom.NewHistogram(prom.HistogramOpts{
			Name:    "sitegen_rep_compile_seconds",
			Help:    "Per-rep compilation duration.",
			Buckets: prom.DefBuckets,
		}),
		filterDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "sitegen_filter_apply_seconds",
			Help:    "Per-filter application duration.",
			Buckets: prom.DefBuckets,
		}, []string{"filter"}),
		depEdges: prom.NewCounter(prom.CounterOpts{
			Name: "sitegen_dependency_edges_total",
			Help: "Dependency edges recorded during compilation.",
		}),
		cycles: prom.NewCounter(prom.CounterOpts{
			Name: "sitegen_dependency_cycles_total",
			Help: "Fatal dependency cycles detected.",
		}),
		runDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "sitegen_run_seconds",
			Help:    "Whole compilation run duration.",
			Buckets: []float64{.1, .5, 1, 5, 15, 60, 300},
		}, []string{"failed"}),
		outputBytes: prom.NewCounter(prom.CounterOpts{
			Name: "sitegen_output_bytes_total",
			Help: "Bytes written to routed outputs.",
		}),
		outputsSkipped: prom.NewCounter(prom.CounterOpts{
			Name: "sitegen_outputs_skipped_total",
			Help: "Routed outputs skipped because content was unchanged.",
		}),
	}
	reg.MustRegister(
		r.repsCompiled, r.repsMemoized, r.repDuration, r.filterDuration,
		r.depEdges, r.cycles, r.runDuration, r.outputBytes, r.outputsSkipped,
	)
	return r
}

func (r *PrometheusRecorder) RepCompiled(d time.Duration) {
	r.repsCompiled.Inc()
	r.repDuration.Observe(d.Seconds())
}

func (r *PrometheusRecorder) RepMemoized() { r.repsMemoized.Inc() }

func (r *PrometheusRecorder) FilterApplied(name string, d time.Duration) {
	r.filterDuration.WithLabelValues(name).Observe(d.Seconds())
}

func (r *PrometheusRecorder) DependencyRecorded() { r.depEdges.Inc() }
func (r *PrometheusRecorder) CycleDetected()      { r.cycles.Inc() }

func (r *PrometheusRecorder) RunCompleted(_ int, d time.Duration, failed bool) {
	r.runDuration.WithLabelValues(strconv.FormatBool(failed)).Observe(d.Seconds())
}

func (r *PrometheusRecorder) OutputWritten(bytes int, skipped bool) {
	if skipped {
		r.outputsSkipped.Inc()
		return
	}
	r.outputBytes.Add(float64(bytes))
}

// HTTPHandler serves Prometheus metrics for the provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
