package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/hubrank/pkg/cache"
	"github.com/matzehuels/hubrank/pkg/centrality"
	"github.com/matzehuels/hubrank/pkg/errors"
	"github.com/matzehuels/hubrank/pkg/observability"
	"github.com/matzehuels/hubrank/pkg/render"
	"github.com/matzehuels/hubrank/pkg/render/nodelink"
)

const keyTypeArtifact = "artifact"

// pngScale is the resolution multiplier for PNG export.
const pngScale = 2.0

// ExportOptions configures a graph export.
type ExportOptions struct {
	// Format is one of dot, svg, png, pdf.
	Format string
	// Top restricts the drawing to the Top highest-degree labeled airports.
	// Zero or negative draws the whole graph.
	Top int
	// Neighbors adds the direct successors of every drawn airport.
	Neighbors bool
}

// ValidateFormat checks that an export format is valid.
func ValidateFormat(format string) error {
	if !render.ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: dot, svg, png, pdf)", format)
	}
	return nil
}

// DOT returns the Graphviz source for a built result.
func DOT(res *Result, opts ExportOptions) string {
	nopts := nodelink.Options{
		Labels: res.Labels,
		Keys:   res.Registry.Keys(),
	}
	if opts.Top > 0 {
		ranking := centrality.Rank(centrality.Degree(res.Graph), res.Labels, opts.Top)
		seeds := make([]int, len(ranking))
		for i, e := range ranking {
			seeds[i] = e.ID
		}
		nopts.Nodes = nodelink.Subset(res.Graph, seeds, opts.Neighbors)
		nopts.Highlight = seeds
		nopts.Title = fmt.Sprintf("Top %d airports by degree (%s)", len(seeds), res.Mode())
	}
	return nodelink.ToDOT(res.Graph, nopts)
}

// Export renders a built result. Rendered images are cached by input hash;
// DOT source is always generated fresh. The bool reports a cache hit.
func (r *Runner) Export(ctx context.Context, res *Result, opts ExportOptions) ([]byte, bool, error) {
	if res == nil || res.Graph == nil || res.Registry == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "export needs a built graph")
	}
	if opts.Format == "" {
		opts.Format = render.FormatSVG
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, false, err
	}

	dot := DOT(res, opts)
	if opts.Format == render.FormatDOT {
		return []byte(dot), false, nil
	}

	cacheKey := r.Keyer.ArtifactKey(res.InputHash, cache.ArtifactKeyOpts{
		Format:    opts.Format,
		Top:       opts.Top,
		Neighbors: opts.Neighbors,
	})
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}

	out := svg
	switch opts.Format {
	case render.FormatPNG:
		out, err = render.ToPNG(ctx, svg, pngScale)
	case render.FormatPDF:
		out, err = render.ToPDF(ctx, svg)
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeUnsupported, err, "convert to %s", opts.Format)
	}

	if err := r.Cache.Set(ctx, cacheKey, out, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(out))
	}
	return out, false, nil
}
