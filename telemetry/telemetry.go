// Package telemetry exports counters for the virtualized renderer.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Haree123/document-editor/ui/virtual"
)

const namespace = "doced"

// Collector implements virtual.Metrics on a Prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	triggers     *prometheus.CounterVec
	coalesced    prometheus.Counter
	measurements *prometheus.CounterVec
	dropped      *prometheus.CounterVec
	windowRows   prometheus.Gauge
	virtualized  prometheus.Gauge
	resets       prometheus.Counter
	renders      prometheus.Histogram
}

var _ virtual.Metrics = (*Collector)(nil)

// New registers the collectors on a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Collector{
		registry: reg,
		triggers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remeasure_triggers_total",
			Help:      "Deferred re-measurements scheduled, by reason.",
		}, []string{"reason"}),
		coalesced: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remeasure_coalesced_total",
			Help:      "Triggers that superseded a pending re-measurement.",
		}),
		measurements: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "measurements_total",
			Help:      "Row measurements reported, by whether the height changed.",
		}, []string{"changed"}),
		dropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "measurements_dropped_total",
			Help:      "Measurements dropped without touching the cache, by cause.",
		}, []string{"cause"}),
		windowRows: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "window_rows",
			Help:      "Rows in the most recently computed window.",
		}),
		virtualized: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "virtualized",
			Help:      "1 when the current document is windowed.",
		}),
		resets: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_resets_total",
			Help:      "Document identity changes.",
		}),
		renders: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_seconds",
			Help:      "Time spent composing a frame.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
	}
}

func (c *Collector) Triggered(reason virtual.Reason) {
	c.triggers.WithLabelValues(reason.String()).Inc()
}

func (c *Collector) Coalesced() { c.coalesced.Inc() }

func (c *Collector) MeasurePass(changed bool) {
	if changed {
		c.measurements.WithLabelValues("true").Inc()
		return
	}
	c.measurements.WithLabelValues("false").Inc()
}

func (c *Collector) MeasureDropped(cause string) {
	c.dropped.WithLabelValues(cause).Inc()
}

func (c *Collector) WindowComputed(rows int, virtualized bool) {
	c.windowRows.Set(float64(rows))
	if virtualized {
		c.virtualized.Set(1)
	} else {
		c.virtualized.Set(0)
	}
}

func (c *Collector) DocumentReset() { c.resets.Inc() }

// ObserveRender records how long a frame took to compose.
func (c *Collector) ObserveRender(d time.Duration) {
	c.renders.Observe(d.Seconds())
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
