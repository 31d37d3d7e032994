package nodelink

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/hubrank/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Nodes restricts the diagram to these ids. Nil means every node.
	Nodes []int

	// Labels maps ids to display names. Unlabeled nodes fall back to
	// Keys, then to the numeric id.
	Labels map[int]string
	Keys   []string

	// Highlight lists ids drawn filled, typically the ranked airports.
	Highlight []int

	// Title is drawn above the diagram when set.
	Title string
}

// Subset returns seeds in ascending order, plus the successors of every
// seed when neighbors is set. Ids outside the graph are ignored.
func Subset(g *graph.Graph, seeds []int, neighbors bool) []int {
	set := make(map[int]struct{}, len(seeds))
	for _, s := range seeds {
		if s < 0 || s >= g.NumNodes() {
			continue
		}
		set[s] = struct{}{}
		if neighbors {
			for _, v := range g.Out(s) {
				set[v] = struct{}{}
			}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// ToDOT converts g to Graphviz DOT source. Parallel arcs are collapsed into
// one edge whose pen width grows with the count. In an undirected graph
// each connection is drawn once.
func ToDOT(g *graph.Graph, opts Options) string {
	nodes := opts.Nodes
	if nodes == nil {
		nodes = make([]int, g.NumNodes())
		for i := range nodes {
			nodes[i] = i
		}
	}
	in := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		in[n] = true
	}
	highlight := make(map[int]bool, len(opts.Highlight))
	for _, h := range opts.Highlight {
		highlight[h] = true
	}

	kind, arrow := "digraph", "->"
	if !g.Directed() {
		kind, arrow = "graph", "--"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=12];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  labelloc=t;\n  label=%q;\n", opts.Title)
	}
	buf.WriteString("\n")

	for _, n := range nodes {
		if n < 0 || n >= g.NumNodes() {
			continue
		}
		attrs := fmt.Sprintf("label=%q, width=%.2f", label(n, opts), nodeWidth(len(g.Out(n))))
		if highlight[n] {
			attrs += ", fillcolor=lightblue"
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n, attrs)
	}

	buf.WriteString("\n")
	for _, e := range collapse(g, in) {
		fmt.Fprintf(&buf, "  n%d %s n%d", e.edge.From, arrow, e.edge.To)
		if e.count > 1 {
			fmt.Fprintf(&buf, " [penwidth=%.1f]", penWidth(e.count))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

type weighted struct {
	edge  graph.Edge
	count int
}

// collapse counts the arcs between included nodes, ordered by endpoint.
func collapse(g *graph.Graph, in map[int]bool) []weighted {
	counts := make(map[graph.Edge]int)
	for u := range in {
		for _, v := range g.Out(u) {
			if !in[v] {
				continue
			}
			if !g.Directed() && v < u {
				continue
			}
			counts[graph.Edge{From: u, To: v}]++
		}
	}

	out := make([]weighted, 0, len(counts))
	for e, c := range counts {
		if !g.Directed() && e.From == e.To {
			c /= 2 // stored once per direction
		}
		out = append(out, weighted{edge: e, count: c})
	}
	slices.SortFunc(out, func(a, b weighted) int {
		if c := cmp.Compare(a.edge.From, b.edge.From); c != 0 {
			return c
		}
		return cmp.Compare(a.edge.To, b.edge.To)
	})
	return out
}

func label(id int, opts Options) string {
	if l, ok := opts.Labels[id]; ok && l != "" {
		return l
	}
	if id < len(opts.Keys) && opts.Keys[id] != "" {
		return opts.Keys[id]
	}
	return strconv.Itoa(id)
}

func nodeWidth(degree int) float64 {
	return min(0.75+float64(degree)*0.01, 3.0)
}

func penWidth(count int) float64 {
	return min(1+float64(count-1)*0.5, 6)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the SVG scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}
