// Package api serves airport rankings over HTTP.
//
// The router is built with chi and exposes:
//
//	GET /healthz                  liveness and build information
//	GET /v1/ranking               ranking (query: top, mode)
//	GET /v1/airports/{code}       one airport: id, name, degree, neighbors
//	GET /v1/reports/latest        most recent saved report (query: mode)
//	GET /v1/reports/{id}          a saved report by id
//	GET /metrics                  Prometheus exposition, when configured
//
// Rankings go through [pipeline.Runner.Execute] and share its cache with
// the CLI. Airport lookups need the graph itself, so the server builds one
// snapshot per graph mode on first use and keeps it for its lifetime;
// concurrent first requests share a single build.
//
// Errors are returned as JSON with the machine-readable code from
// pkg/errors:
//
//	{"error": "Bad Request", "code": "INVALID_MODE", "message": "..."}
package api
