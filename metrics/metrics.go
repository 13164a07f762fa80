package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so tests can build as many as they like. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInflight prometheus.Gauge

	graphBuildDuration prometheus.Histogram
	graphNodes         prometheus.Gauge
	graphEdges         prometheus.Gauge

	goalsCompleted prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "speclab_http_requests_total",
				Help: "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "speclab_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "speclab_http_inflight_requests",
			Help: "Requests currently being served.",
		}),
		graphBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "speclab_techtree_build_duration_seconds",
			Help:    "Time taken to load, lay out and serialise the tech tree.",
			Buckets: prometheus.DefBuckets,
		}),
		graphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "speclab_techtree_nodes",
			Help: "Nodes in the most recently built tech tree.",
		}),
		graphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "speclab_techtree_edges",
			Help: "Edges in the most recently built tech tree.",
		}),
		goalsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "speclab_goals_completed_total",
			Help: "Goals completed automatically by acquiring the certification.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.httpInflight,
		m.graphBuildDuration,
		m.graphNodes,
		m.graphEdges,
		m.goalsCompleted,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) InflightInc() {
	if m != nil {
		m.httpInflight.Inc()
	}
}

func (m *Metrics) InflightDec() {
	if m != nil {
		m.httpInflight.Dec()
	}
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveGraphBuild(nodes, edges int, d time.Duration) {
	if m == nil {
		return
	}
	m.graphBuildDuration.Observe(d.Seconds())
	m.graphNodes.Set(float64(nodes))
	m.graphEdges.Set(float64(edges))
}

func (m *Metrics) GoalsCompleted(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.goalsCompleted.Add(float64(n))
}
