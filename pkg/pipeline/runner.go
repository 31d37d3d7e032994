package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hubrank/pkg/cache"
	"github.com/matzehuels/hubrank/pkg/centrality"
	"github.com/matzehuels/hubrank/pkg/dataset"
	"github.com/matzehuels/hubrank/pkg/errors"
	"github.com/matzehuels/hubrank/pkg/graph"
	"github.com/matzehuels/hubrank/pkg/observability"
	"github.com/matzehuels/hubrank/pkg/registry"
	"github.com/matzehuels/hubrank/pkg/resolve"
)

const keyTypeRanking = "ranking"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedRanking is the cache payload of Execute.
type cachedRanking struct {
	Ranking   []centrality.Entry `json:"ranking"`
	Stats     Stats              `json:"stats"`
	InputHash string             `json:"input_hash"`
}

// Execute runs the complete load → build → rank pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	airportsHash, routesHash, err := digests(opts)
	if err != nil {
		return nil, err
	}
	cacheKey := r.Keyer.RankingKey(opts.RankingKeyOpts(airportsHash, routesHash))

	if !opts.Refresh {
		if res, ok := r.cached(ctx, cacheKey); ok {
			opts.Logger.Debug("ranking cache hit", "key", cacheKey)
			return res, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeRanking)

	result, err := r.build(ctx, opts, airportsHash, routesHash)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.rank(ctx, result, opts)

	payload, err := json.Marshal(cachedRanking{
		Ranking:   result.Ranking,
		Stats:     result.Stats,
		InputHash: result.InputHash,
	})
	if err == nil {
		if err := r.Cache.Set(ctx, cacheKey, payload, cache.TTLRanking); err != nil {
			opts.Logger.Warn("failed to cache ranking", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeRanking, len(payload))
		}
	}

	return result, nil
}

// Build loads both relations and constructs the graph and labels without
// ranking. It never reads or writes the cache.
func (r *Runner) Build(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}

	airportsHash, routesHash, err := digests(opts)
	if err != nil {
		return nil, err
	}
	return r.build(ctx, opts, airportsHash, routesHash)
}

// Rank scores an already built result and ranks it with opts.Top.
func (r *Runner) Rank(ctx context.Context, res *Result, opts Options) error {
	if res.Graph == nil {
		return errors.New(errors.ErrCodeInvalidInput, "result has no graph")
	}
	if opts.Top == 0 {
		opts.Top = DefaultTop
	}
	r.applyLogger(&opts)
	r.rank(ctx, res, opts)
	return nil
}

func (r *Runner) cached(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	var c cachedRanking
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeRanking)
	return &Result{
		Ranking:   c.Ranking,
		Stats:     c.Stats,
		InputHash: c.InputHash,
		CacheHit:  true,
	}, true
}

func (r *Runner) build(ctx context.Context, opts Options, airportsHash, routesHash string) (*Result, error) {
	result := &Result{
		InputHash: cache.Hash([]byte(fmt.Sprint(airportsHash, routesHash, opts.Mode, opts.Dedupe, opts.SkipInvalid, opts.columnNames()))),
	}
	dopts := opts.datasetOptions()

	// Stage 1: Load
	loadStart := time.Now()
	airports, err := load(ctx, "airports", opts.AirportsPath, func(p string) (*dataset.Airports, error) {
		return dataset.LoadAirports(p, dopts)
	}, func(a *dataset.Airports) (int, int) { return a.Records, a.Skipped })
	if err != nil {
		return nil, err
	}
	routes, err := load(ctx, "routes", opts.RoutesPath, func(p string) (*dataset.Routes, error) {
		return dataset.LoadRoutes(p, dopts)
	}, func(rt *dataset.Routes) (int, int) { return rt.Records, rt.Skipped })
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Airports = len(airports.Names)
	result.Stats.Routes = len(routes.Routes)
	result.Stats.Unkeyed = airports.Unkeyed
	result.Stats.SkippedAirports = airports.Skipped
	result.Stats.SkippedRoutes = routes.Skipped

	opts.Logger.Info("loaded datasets",
		"airports", result.Stats.Airports,
		"routes", result.Stats.Routes,
		"skipped", airports.Skipped+routes.Skipped,
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Register and build
	buildStart := time.Now()
	reg, edges := registry.FromPairs(routes.Pairs())
	if opts.Dedupe == DedupeUnique {
		unique := graph.Dedupe(edges)
		result.Stats.Duplicates = len(edges) - len(unique)
		edges = unique
	}

	build := graph.BuildDirected
	if !opts.IsDirected() {
		build = graph.BuildUndirected
	}
	g, err := build(reg.Len(), edges)
	result.Stats.BuildTime = time.Since(buildStart)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, opts.Mode, 0, 0, result.Stats.BuildTime, err)
		return nil, errors.Wrap(errors.ErrCodeEdgeOutOfRange, err, "build %s graph", opts.Mode)
	}
	observability.Pipeline().OnBuildComplete(ctx, opts.Mode, g.NumNodes(), g.EdgeCount(), result.Stats.BuildTime, nil)

	result.Registry = reg
	result.Graph = g
	result.Stats.Nodes = g.NumNodes()
	result.Stats.Edges = len(edges)
	result.Stats.Arcs = g.EdgeCount()

	// Stage 3: Resolve
	result.Labels = resolve.Labels(reg, airports.Names)
	result.Stats.Unlabeled = reg.Len() - len(result.Labels)

	opts.Logger.Info("built graph",
		"mode", opts.Mode,
		"nodes", result.Stats.Nodes,
		"edges", result.Stats.Edges,
		"duration", result.Stats.BuildTime)
	if result.Stats.Unlabeled > 0 {
		opts.Logger.Debug("airports without a name are excluded from rankings",
			"count", result.Stats.Unlabeled,
			"codes", resolve.Missing(reg, airports.Names))
	}
	if result.Stats.Duplicates > 0 {
		opts.Logger.Debug("removed duplicate routes", "count", result.Stats.Duplicates)
	}

	return result, nil
}

func (r *Runner) rank(ctx context.Context, res *Result, opts Options) {
	start := time.Now()
	res.Scores = centrality.Degree(res.Graph)
	k := opts.Top
	if k < 0 {
		k = 0
	}
	res.Ranking = centrality.Rank(res.Scores, res.Labels, k)
	res.Stats.RankTime = time.Since(start)

	observability.Pipeline().OnRankComplete(ctx, opts.Mode, len(res.Ranking), res.Stats.RankTime)
	opts.Logger.Info("ranked airports",
		"entries", len(res.Ranking),
		"duration", res.Stats.RankTime)
}

// load reads one relation, reporting it to the pipeline hooks.
func load[T any](ctx context.Context, relation, path string, read func(string) (T, error), counts func(T) (int, int)) (T, error) {
	observability.Pipeline().OnLoadStart(ctx, relation)
	start := time.Now()

	v, err := read(path)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, relation, 0, 0, time.Since(start), err)
		var zero T
		return zero, loadError(relation, path, err)
	}
	records, skipped := counts(v)
	observability.Pipeline().OnLoadComplete(ctx, relation, records, skipped, time.Since(start), nil)
	return v, nil
}

// digests hashes both input files for cache keys.
func digests(opts Options) (string, string, error) {
	a, err := dataset.Digest(opts.AirportsPath)
	if err != nil {
		return "", "", loadError("airports", opts.AirportsPath, err)
	}
	rt, err := dataset.Digest(opts.RoutesPath)
	if err != nil {
		return "", "", loadError("routes", opts.RoutesPath, err)
	}
	return a, rt, nil
}

// loadError maps dataset and filesystem errors onto error codes.
func loadError(relation, path string, err error) error {
	var re *dataset.RecordError
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "%s file not found", relation)
	case stderrors.Is(err, dataset.ErrMissingColumn):
		return errors.Wrap(errors.ErrCodeMissingColumn, err, "%s file %s", relation, path)
	case stderrors.As(err, &re):
		return errors.Wrap(errors.ErrCodeInvalidRecord, err, "%s file %s", relation, path)
	default:
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s file %s", relation, path)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
