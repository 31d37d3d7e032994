// Package metrics exposes hubrank's Prometheus metrics.
//
// A [Registry] owns its own prometheus.Registry and implements the
// observability hook interfaces, so registering it once at startup
// instruments the pipeline, the cache and the HTTP API:
//
//	m := metrics.NewRegistry()
//	observability.SetPipelineHooks(m)
//	observability.SetCacheHooks(m)
//	observability.SetHTTPHooks(m)
//	http.Handle("/metrics", m.Handler())
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/hubrank/pkg/observability"
)

// Registry holds all metrics for the application
type Registry struct {
	// Pipeline Metrics
	LoadsTotal    *prometheus.CounterVec
	LoadDuration  *prometheus.HistogramVec
	RecordsTotal  *prometheus.CounterVec
	SkippedTotal  *prometheus.CounterVec
	BuildsTotal   *prometheus.CounterVec
	BuildDuration *prometheus.HistogramVec
	GraphNodes    *prometheus.GaugeVec
	GraphArcs     *prometheus.GaugeVec
	RankingsTotal *prometheus.CounterVec
	RankDuration  *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	CacheSetBytes    *prometheus.HistogramVec

	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initPipelineMetrics()
	r.initCacheMetrics()
	r.initHTTPMetrics()

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

var (
	_ observability.PipelineHooks = (*Registry)(nil)
	_ observability.CacheHooks    = (*Registry)(nil)
	_ observability.HTTPHooks     = (*Registry)(nil)
)
