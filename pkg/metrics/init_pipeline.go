package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPipelineMetrics() {
	r.LoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubrank_dataset_loads_total",
			Help: "Total number of dataset loads",
		},
		[]string{"relation", "status"},
	)

	r.LoadDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hubrank_dataset_load_duration_seconds",
			Help:    "Dataset load latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"relation"},
	)

	r.RecordsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubrank_dataset_records_total",
			Help: "Total number of dataset records read",
		},
		[]string{"relation"},
	)

	r.SkippedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubrank_dataset_records_skipped_total",
			Help: "Total number of invalid dataset records skipped",
		},
		[]string{"relation"},
	)

	r.BuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubrank_graph_builds_total",
			Help: "Total number of graph builds",
		},
		[]string{"mode", "status"},
	)

	r.BuildDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hubrank_graph_build_duration_seconds",
			Help:    "Graph build latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	r.GraphNodes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hubrank_graph_nodes",
			Help: "Node count of the most recently built graph",
		},
		[]string{"mode"},
	)

	r.GraphArcs = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hubrank_graph_arcs",
			Help: "Stored arc count of the most recently built graph",
		},
		[]string{"mode"},
	)

	r.RankingsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubrank_rankings_total",
			Help: "Total number of rankings computed",
		},
		[]string{"mode"},
	)

	r.RankDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hubrank_rank_duration_seconds",
			Help:    "Degree scoring and ranking latency in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"mode"},
	)
}
