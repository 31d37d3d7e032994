// Package pkg provides the core libraries for hubrank airport ranking.
//
// # Overview
//
// Hubrank reads an airport table and a route table, builds a graph whose
// nodes are airports and whose edges are routes, and ranks airports by
// degree centrality. The pkg directory is organized into four areas:
//
//  1. Core - identifiers, graphs and centrality
//  2. Data - CSV ingestion and name resolution
//  3. Orchestration - the pipeline shared by CLI and API
//  4. Infrastructure - caching, reports, metrics, configuration, HTTP
//
// # Architecture
//
// The typical data flow through hubrank:
//
//	airports.csv, routes.csv
//	         ↓
//	    [dataset] package (read relations, report bad records)
//	         ↓
//	    [registry] package (airport code → dense id)
//	         ↓
//	    [graph] package (directed or undirected adjacency lists)
//	         ↓
//	    [centrality] package (degree scores, ranking)
//	         ↓
//	    [resolve] package (id → airport name)
//	         ↓
//	    table / JSON / CSV, DOT/SVG, HTTP
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/hubrank/pkg/centrality"
//	    "github.com/matzehuels/hubrank/pkg/graph"
//	    "github.com/matzehuels/hubrank/pkg/registry"
//	    "github.com/matzehuels/hubrank/pkg/resolve"
//	)
//
//	// 1. Assign ids to route endpoints
//	reg, edges := registry.FromPairs([]registry.Pair{
//	    {From: "JFK", To: "LAX"},
//	    {From: "LAX", To: "ORD"},
//	})
//
//	// 2. Build the graph
//	g, _ := graph.BuildUndirected(reg.Len(), edges)
//
//	// 3. Score and label
//	labels := resolve.Labels(reg, map[string]string{"JFK": "John F Kennedy Intl"})
//	top := centrality.Rank(centrality.Degree(g), labels, 10)
//
// # Main Packages
//
// ## Core
//
// [registry] - Bijective key ↔ id mapping. Ids are dense and assigned in
// first-encounter order so the id space indexes slices directly.
//
// [graph] - Adjacency-list graph over ids with sorted successor lists.
// Undirected graphs store every edge in both directions.
//
// [centrality] - Raw degree scores and deterministic descending rankings.
//
// ## Data
//
// [dataset] - Header-addressed CSV reading of the airport and route relations,
// with per-record errors and an optional skip mode.
//
// [resolve] - Joins registry ids with airport names for display.
//
// ## Orchestration
//
// [pipeline] - load → register → build → resolve → rank, with result caching
// and graph export. Used by both the CLI and the API.
//
// ## Infrastructure
//
// [cache] - Result cache with file, Redis and no-op backends.
//
// [report] - Ranking snapshots with table, JSON and CSV writers and memory or
// MongoDB storage.
//
// [render/nodelink] - Graphviz DOT and SVG drawings of the route graph.
//
// [render] - SVG to PDF/PNG conversion.
//
// [observability] - Hook interfaces for pipeline, cache and HTTP events.
//
// [metrics] - Prometheus implementation of the observability hooks.
//
// [config] - TOML configuration with XDG lookup.
//
// [api] - chi router serving rankings and airport lookups.
//
// [errors] - Coded errors shared by the CLI exit status and HTTP responses.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                      # All unit tests
//	go test -tags integration ./pkg/...    # Also Redis and MongoDB
//
// Integration tests read HUBRANK_TEST_REDIS_URL and HUBRANK_TEST_MONGO_URI.
//
// [registry]: https://pkg.go.dev/github.com/matzehuels/hubrank/pkg/registry
// [graph]: https://pkg.go.dev/github.com/matzehuels/hubrank/pkg/graph
// [centrality]: https://pkg.go.dev/github.com/matzehuels/hubrank/pkg/centrality
// [dataset]: https://pkg.go.dev/github.com/matzehuels/hubrank/pkg/dataset
// [resolve]: https://pkg.go.dev/github.com/matzehuels/hubrank/pkg/resolve
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/hubrank/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/hubrank/pkg/cache
// [report]: https://pkg.go.dev/github.com/matzehuels/hubrank/pkg/report
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/hubrank/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/hubrank/pkg/render
// [observability]: https://pkg.go.dev/github.com/matzehuels/hubrank/pkg/observability
// [metrics]: https://pkg.go.dev/github.com/matzehuels/hubrank/pkg/metrics
// [config]: https://pkg.go.dev/github.com/matzehuels/hubrank/pkg/config
// [api]: https://pkg.go.dev/github.com/matzehuels/hubrank/pkg/api
// [errors]: https://pkg.go.dev/github.com/matzehuels/hubrank/pkg/errors
package pkg
