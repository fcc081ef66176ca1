// Package metrics exports planner operation and HTTP metrics to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder observes planner operations. Each recorder owns its registry so
// tests can create as many as they like.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	projects   prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gsep",
			Name:      "operations_total",
			Help:      "Planner operations by name and result.",
		}, []string{"operation", "result"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gsep",
			Name:      "operation_duration_seconds",
			Help:      "Planner operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"operation"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gsep",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gsep",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		projects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gsep",
			Name:      "projects",
			Help:      "Projects currently held in the workspace.",
		}),
	}
	r.registry.MustRegister(
		r.operations, r.durations, r.requests, r.latency, r.projects,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// Observe records one planner operation. A nil recorder is a no-op.
func (r *Recorder) Observe(operation string, success bool, d time.Duration) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(operation, result(success)).Inc()
	r.durations.WithLabelValues(operation).Observe(d.Seconds())
}

// SetProjects updates the workspace size gauge.
func (r *Recorder) SetProjects(n int) {
	if r == nil {
		return
	}
	r.projects.Set(float64(n))
}

// ObserveRequest records one HTTP request.
func (r *Recorder) ObserveRequest(route, method string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.latency.WithLabelValues(route, method).Observe(d.Seconds())
}

// Registry exposes the underlying registry, mostly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
