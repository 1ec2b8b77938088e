package main

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors of the service.
type Metrics struct {
	registry             *prometheus.Registry
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	CatalogAdverts       prometheus.Gauge
	CatalogCategories    prometheus.Gauge
	SnapshotOperations   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adverts_http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "adverts_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "adverts_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		CatalogAdverts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "adverts_catalog_adverts",
				Help: "Number of adverts currently stored in the catalog.",
			},
		),
		CatalogCategories: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "adverts_catalog_categories",
				Help: "Number of distinct categories currently stored in the catalog.",
			},
		),
		SnapshotOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adverts_snapshot_operations_total",
				Help: "Snapshot load and save operations by result.",
			},
			[]string{"operation", "result"},
		),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.CatalogAdverts,
		m.CatalogCategories,
		m.SnapshotOperations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// SetCatalogStats refreshes the catalog gauges.
func (m *Metrics) SetCatalogStats(stats IndexStats) {
	m.CatalogAdverts.Set(float64(stats.Adverts))
	m.CatalogCategories.Set(float64(stats.Categories))
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// MetricsMiddleware records HTTP request count, latency, and in-flight gauge.
func (m *Metrics) MetricsMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		cw := NewCustomResponseWriter(w)
		next(cw, r, ps)

		path := normalizePath(r.URL.Path)
		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(cw.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	}
}

// normalizePath collapses advert identifiers and category names
// so that the path label keeps a bounded cardinality.
func normalizePath(path string) string {
	segments := strings.Split(strings.TrimSuffix(path, "/"), "/")
	for i, seg := range segments {
		if i > 0 && segments[i-1] == "category" {
			segments[i] = ":category"
			continue
		}
		if _, err := strconv.Atoi(seg); err == nil {
			segments[i] = ":id"
		}
	}
	if normalized := strings.Join(segments, "/"); normalized != "" {
		return normalized
	}
	return "/"
}
