// Package pipeline runs the airport ranking end to end.
//
// The pipeline is shared by the CLI and the HTTP API so both produce the
// same ranking for the same inputs. It has five stages:
//
//  1. Load: read the airport and route relations (pkg/dataset)
//  2. Register: assign dense ids to route endpoints (pkg/registry)
//  3. Build: construct the directed or undirected graph (pkg/graph)
//  4. Resolve: join ids with airport names (pkg/resolve)
//  5. Rank: score by degree and rank the labeled nodes (pkg/centrality)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    AirportsPath: "airports.csv",
//	    RoutesPath:   "routes.csv",
//	    Mode:         pipeline.ModeDirected,
//	})
//	for _, e := range result.Ranking {
//	    fmt.Println(e.Label, e.Degree)
//	}
//
// [Runner.Execute] caches rankings keyed by the content of both input files
// and every option that affects the output. [Runner.Build] stops after the
// resolve stage and is never cached; it is what graph export and the API
// use when they need the graph itself.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hubrank/pkg/cache"
	"github.com/matzehuels/hubrank/pkg/centrality"
	"github.com/matzehuels/hubrank/pkg/dataset"
	"github.com/matzehuels/hubrank/pkg/errors"
	"github.com/matzehuels/hubrank/pkg/graph"
	"github.com/matzehuels/hubrank/pkg/registry"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Graph modes.
const (
	ModeDirected   = "directed"
	ModeUndirected = "undirected"
)

// Duplicate route policies.
const (
	// DedupeKeep keeps repeated routes; each one adds to the degree.
	DedupeKeep = "keep"
	// DedupeUnique counts each distinct (source, destination) pair once.
	DedupeUnique = "unique"
)

const (
	// DefaultMode is the graph mode used when none is given.
	DefaultMode = ModeDirected

	// DefaultDedupe is the duplicate policy used when none is given.
	DefaultDedupe = DedupeKeep

	// DefaultTop is the ranking size used when none is given.
	DefaultTop = centrality.DefaultTop
)

// ValidModes is the set of supported graph modes.
var ValidModes = map[string]bool{
	ModeDirected:   true,
	ModeUndirected: true,
}

// ValidDedupePolicies is the set of supported duplicate policies.
var ValidDedupePolicies = map[string]bool{
	DedupeKeep:   true,
	DedupeUnique: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	AirportsPath string          `json:"airports_path"`
	RoutesPath   string          `json:"routes_path"`
	Columns      dataset.Columns `json:"columns"`

	Mode   string `json:"mode,omitempty"`
	Dedupe string `json:"dedupe,omitempty"`

	// Top is the ranking size. Zero selects DefaultTop; a negative value
	// keeps every labeled node.
	Top int `json:"top,omitempty"`

	SkipInvalid bool `json:"skip_invalid,omitempty"`

	// Refresh bypasses the cache read; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
//
// On a cache hit only Ranking and Stats are populated; Registry, Graph,
// Scores and Labels are nil.
type Result struct {
	Registry *registry.Registry
	Graph    *graph.Graph
	Scores   centrality.Scores
	Labels   map[int]string
	Ranking  []centrality.Entry

	// InputHash identifies the inputs and build options of this run.
	InputHash string

	Stats    Stats
	CacheHit bool
}

// Mode returns the mode the graph was built in, or "" when the result
// carries no graph.
func (r *Result) Mode() string {
	switch {
	case r.Graph == nil:
		return ""
	case r.Graph.Directed():
		return ModeDirected
	default:
		return ModeUndirected
	}
}

// Neighbors returns the distinct successor codes of node id in ascending id
// order. Parallel routes appear once.
func (r *Result) Neighbors(id int) []string {
	if r.Graph == nil || r.Registry == nil {
		return nil
	}
	out := r.Graph.Out(id)
	codes := make([]string, 0, len(out))
	for i, v := range out {
		if i > 0 && out[i-1] == v {
			continue
		}
		if key, ok := r.Registry.Key(v); ok {
			codes = append(codes, key)
		}
	}
	return codes
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Airports        int `json:"airports"`
	Routes          int `json:"routes"`
	Unkeyed         int `json:"unkeyed_airports"`
	SkippedAirports int `json:"skipped_airports"`
	SkippedRoutes   int `json:"skipped_routes"`

	Nodes      int `json:"nodes"`
	Edges      int `json:"edges"`
	Duplicates int `json:"duplicates_removed"`
	Arcs       int `json:"arcs"`
	Unlabeled  int `json:"unlabeled"`

	LoadTime  time.Duration `json:"load_time"`
	BuildTime time.Duration `json:"build_time"`
	RankTime  time.Duration `json:"rank_time"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateMode checks that a graph mode is valid.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidMode,
			"invalid mode: %q (must be one of: directed, undirected)", mode)
	}
	return nil
}

// ValidateDedupe checks that a duplicate policy is valid.
func ValidateDedupe(policy string) error {
	if !ValidDedupePolicies[policy] {
		return errors.New(errors.ErrCodeInvalidPolicy,
			"invalid dedupe policy: %q (must be one of: keep, unique)", policy)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if o.Top == 0 {
		o.Top = DefaultTop
	}
	if o.Top > 0 {
		if err := errors.ValidateTopK(o.Top); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks the fields needed to load and build the graph.
func (o *Options) ValidateForBuild() error {
	if err := errors.ValidatePath(o.AirportsPath); err != nil {
		return fmt.Errorf("airports: %w", err)
	}
	if err := errors.ValidatePath(o.RoutesPath); err != nil {
		return fmt.Errorf("routes: %w", err)
	}

	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if o.Dedupe == "" {
		o.Dedupe = DefaultDedupe
	}
	if err := ValidateDedupe(o.Dedupe); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// IsDirected reports whether the options select a directed graph.
func (o *Options) IsDirected() bool {
	return o.Mode == "" || o.Mode == ModeDirected
}

// datasetOptions returns the read options shared by both relations.
func (o *Options) datasetOptions() dataset.Options {
	return dataset.Options{Columns: o.Columns, SkipInvalid: o.SkipInvalid}
}

// columnNames lists the resolved header names in a fixed order.
func (o *Options) columnNames() []string {
	c := o.Columns
	d := dataset.DefaultColumns()
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return []string{
		pick(c.Airports.Key, d.Airports.Key),
		pick(c.Airports.Name, d.Airports.Name),
		pick(c.Routes.Source, d.Routes.Source),
		pick(c.Routes.Destination, d.Routes.Destination),
	}
}

// RankingKeyOpts returns cache key options for the ranking.
func (o *Options) RankingKeyOpts(airportsHash, routesHash string) cache.RankingKeyOpts {
	return cache.RankingKeyOpts{
		AirportsHash: airportsHash,
		RoutesHash:   routesHash,
		Mode:         o.Mode,
		Dedupe:       o.Dedupe,
		Top:          o.Top,
		SkipInvalid:  o.SkipInvalid,
		Columns:      o.columnNames(),
	}
}
