// Package promhooks implements the observability hooks with Prometheus
// metrics.
//
// Register once at startup:
//
//	h := promhooks.New(prometheus.DefaultRegisterer)
//	observability.SetSearchHooks(h)
//	observability.SetLoadHooks(h)
//	observability.SetRenderHooks(h)
package promhooks

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/waypoint/pkg/observability"
)

const namespace = "waypoint"

// Hooks records search, load and render events as Prometheus metrics. It
// implements all three hook interfaces and is safe for concurrent use.
type Hooks struct {
	Searches       *prometheus.CounterVec
	SearchDuration *prometheus.HistogramVec
	Iterations     *prometheus.HistogramVec
	Resorts        *prometheus.CounterVec
	InFlight       prometheus.Gauge

	Loads          *prometheus.CounterVec
	LoadedElements *prometheus.GaugeVec

	Renders     *prometheus.CounterVec
	RenderBytes prometheus.Counter
}

var (
	_ observability.SearchHooks = (*Hooks)(nil)
	_ observability.LoadHooks   = (*Hooks)(nil)
	_ observability.RenderHooks = (*Hooks)(nil)
)

// New creates the metrics and registers them with reg. It panics if any
// metric is already registered, like promauto.
func New(reg prometheus.Registerer) *Hooks {
	f := promauto.With(reg)
	return &Hooks{
		Searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Completed searches by kind and outcome.",
		}, []string{"kind", "outcome"}),
		SearchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall time of completed searches.",
			Buckets:   []float64{1e-6, 1e-5, 1e-4, 0.001, 0.01, 0.1, 1},
		}, []string{"kind"}),
		Iterations: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_iterations",
			Help:      "Nodes extracted from the open set per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"kind"}),
		Resorts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_resorts_total",
			Help:      "Deferred open-set re-sorts.",
		}, []string{"kind"}),
		InFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "searches_in_flight",
			Help:      "Searches currently running.",
		}),
		Loads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Map and graph file loads by format and result.",
		}, []string{"format", "result"}),
		LoadedElements: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loaded_elements",
			Help:      "Searchable nodes in the most recently loaded file per format.",
		}, []string{"format"}),
		Renders: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Render operations by output format and result.",
		}, []string{"format", "result"}),
		RenderBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_bytes_total",
			Help:      "Bytes of rendered output.",
		}),
	}
}

func (h *Hooks) OnSearchStart(context.Context, string) {
	h.InFlight.Inc()
}

func (h *Hooks) OnSearchComplete(_ context.Context, kind string, stats observability.SearchStats) {
	h.InFlight.Dec()
	h.Searches.WithLabelValues(kind, stats.Outcome).Inc()
	h.SearchDuration.WithLabelValues(kind).Observe(stats.Duration.Seconds())
	h.Iterations.WithLabelValues(kind).Observe(float64(stats.Iterations))
	h.Resorts.WithLabelValues(kind).Add(float64(stats.Resorts))
}

func (h *Hooks) OnLoadStart(context.Context, string, string) {}

func (h *Hooks) OnLoadComplete(_ context.Context, format, _ string, count int, _ time.Duration, err error) {
	h.Loads.WithLabelValues(format, result(err)).Inc()
	if err == nil {
		h.LoadedElements.WithLabelValues(format).Set(float64(count))
	}
}

func (h *Hooks) OnRenderStart(context.Context, string) {}

func (h *Hooks) OnRenderComplete(_ context.Context, format string, size int, _ time.Duration, err error) {
	h.Renders.WithLabelValues(format, result(err)).Inc()
	h.RenderBytes.Add(float64(size))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
