package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pgconsole/pgconsole/internal/services/browser/platform/httpx"
)

const namespace = "pgconsole"

// Metrics holds the browser service's Prometheus collectors on a private
// registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	PluginFailures  *prometheus.CounterVec
}

// NewMetrics registers the browser collectors plus Go runtime collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		PluginFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "plugin",
			Name:      "hook_failures_total",
			Help:      "Plugin hook failures skipped by failure isolation",
		}, []string{"plugin", "hook"}),
	}
	reg.MustRegister(
		m.RequestDuration,
		m.PluginFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordPluginFailure counts one isolated hook failure.
func (m *Metrics) RecordPluginFailure(pluginID, hook string) {
	if m == nil {
		return
	}
	m.PluginFailures.WithLabelValues(pluginID, hook).Inc()
}

// Middleware observes request latency labelled by the matched mux pattern.
func (m *Metrics) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			recorder := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(recorder, r)
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.RequestDuration.
				WithLabelValues(r.Method, route, strconv.Itoa(recorder.Status())).
				Observe(time.Since(started).Seconds())
		})
	}
}
