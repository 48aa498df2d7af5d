// Package status exposes simulation counters as Prometheus metrics.
//
// Metrics are registered on a private registry so several simulations (or tests) can coexist in
// one process. The frame loop writes once per frame; the HTTP handler and the HUD read.
package status

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ideanet"

// Snapshot is the per-frame state of one simulation
type Snapshot struct {
	Nodes       int
	Edges       int
	Active      int
	Queued      int
	Activations uint64 // cumulative nodes lit since start
	Rebuilds    uint64
}

// Metrics holds the collectors for one simulation
type Metrics struct {
	reg *prometheus.Registry

	nodes      prometheus.Gauge
	edges      prometheus.Gauge
	active     prometheus.Gauge
	queued     prometheus.Gauge
	frames     prometheus.Counter
	activation prometheus.Counter
	rebuilds   prometheus.Counter
	frameTime  prometheus.Histogram

	// Counters are monotonic; these remember the last cumulative values seen
	lastActivations uint64
	lastRebuilds    uint64

	fps AtomicFloat
}

// NewMetrics registers all collectors on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,
		nodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "nodes",
			Help: "Nodes in the current graph.",
		}),
		edges: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "edges",
			Help: "Edges in the current graph.",
		}),
		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "active_nodes",
			Help: "Nodes currently lit.",
		}),
		queued: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "activation_queue_length",
			Help: "Pending activations waiting in the queue.",
		}),
		frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "frames_total",
			Help: "Frames rendered.",
		}),
		activation: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "activations_total",
			Help: "Nodes lit by the propagator.",
		}),
		rebuilds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "rebuilds_total",
			Help: "Graph rebuilds caused by resize or request.",
		}),
		frameTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "frame_seconds",
			Help:    "Time spent stepping and drawing one frame.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 10),
		}),
	}
}

// Registry returns the underlying registry for extra collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// ObserveFrame records one frame. Safe on a nil receiver
func (m *Metrics) ObserveFrame(d time.Duration, s Snapshot) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.frameTime.Observe(d.Seconds())
	m.nodes.Set(float64(s.Nodes))
	m.edges.Set(float64(s.Edges))
	m.active.Set(float64(s.Active))
	m.queued.Set(float64(s.Queued))

	// The propagator restarts its count on rebuild
	if s.Activations < m.lastActivations {
		m.lastActivations = 0
	}
	m.activation.Add(float64(s.Activations - m.lastActivations))
	m.lastActivations = s.Activations

	if s.Rebuilds > m.lastRebuilds {
		m.rebuilds.Add(float64(s.Rebuilds - m.lastRebuilds))
		m.lastRebuilds = s.Rebuilds
	}
}

// SetFPS publishes the smoothed frame rate
func (m *Metrics) SetFPS(fps float64) {
	if m == nil {
		return
	}
	m.fps.Set(fps)
}

// FPS returns the last published frame rate
func (m *Metrics) FPS() float64 {
	if m == nil {
		return 0
	}
	return m.fps.Get()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
