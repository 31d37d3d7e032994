package metrics

import (
	"context"
	"strconv"
	"time"
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordLoad records a dataset load
func (r *Registry) RecordLoad(relation string, records, skipped int, duration time.Duration, err error) {
	r.LoadsTotal.WithLabelValues(relation, status(err)).Inc()
	r.LoadDuration.WithLabelValues(relation).Observe(duration.Seconds())
	r.RecordsTotal.WithLabelValues(relation).Add(float64(records))
	r.SkippedTotal.WithLabelValues(relation).Add(float64(skipped))
}

// RecordBuild records a graph build and the resulting graph size
func (r *Registry) RecordBuild(mode string, nodes, arcs int, duration time.Duration, err error) {
	r.BuildsTotal.WithLabelValues(mode, status(err)).Inc()
	r.BuildDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if err == nil {
		r.GraphNodes.WithLabelValues(mode).Set(float64(nodes))
		r.GraphArcs.WithLabelValues(mode).Set(float64(arcs))
	}
}

// RecordRank records a ranking computation
func (r *Registry) RecordRank(mode string, duration time.Duration) {
	r.RankingsTotal.WithLabelValues(mode).Inc()
	r.RankDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Hook implementations

func (r *Registry) OnLoadStart(context.Context, string) {}

func (r *Registry) OnLoadComplete(_ context.Context, relation string, records, skipped int, d time.Duration, err error) {
	r.RecordLoad(relation, records, skipped, d, err)
}

func (r *Registry) OnBuildComplete(_ context.Context, mode string, nodes, arcs int, d time.Duration, err error) {
	r.RecordBuild(mode, nodes, arcs, d, err)
}

func (r *Registry) OnRankComplete(_ context.Context, mode string, _ int, d time.Duration) {
	r.RecordRank(mode, d)
}

func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheHitsTotal.WithLabelValues(keyType).Inc()
}

func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheMissesTotal.WithLabelValues(keyType).Inc()
}

func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheSetBytes.WithLabelValues(keyType).Observe(float64(size))
}

func (r *Registry) OnRequest(_ context.Context, method, route string, statusCode int, d time.Duration) {
	r.RecordHTTPRequest(method, route, statusCode, d)
}
