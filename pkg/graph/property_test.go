package graph

import (
	"reflect"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// edgesFrom pairs consecutive raw values into edges over n nodes.
func edgesFrom(n int, raw []int) []Edge {
	edges := make([]Edge, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		edges = append(edges, Edge{From: raw[i] % n, To: raw[i+1] % n})
	}
	return edges
}

// TestBuildInvariants checks structural properties of built graphs over
// random edge multisets.
func TestBuildInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	genN := gen.IntRange(1, 16)
	genRaw := gen.SliceOf(gen.IntRange(0, 1<<10))

	properties.Property("directed build is deterministic", prop.ForAll(
		func(n int, raw []int) bool {
			edges := edgesFrom(n, raw)
			g1, err1 := BuildDirected(n, edges)
			g2, err2 := BuildDirected(n, edges)
			if err1 != nil || err2 != nil {
				return false
			}
			return reflect.DeepEqual(g1.Adjacency(), g2.Adjacency())
		},
		genN, genRaw,
	))

	properties.Property("build ignores input order", prop.ForAll(
		func(n int, raw []int) bool {
			edges := edgesFrom(n, raw)
			reversed := slices.Clone(edges)
			slices.Reverse(reversed)
			g1, _ := BuildDirected(n, edges)
			g2, _ := BuildDirected(n, reversed)
			return reflect.DeepEqual(g1.Adjacency(), g2.Adjacency())
		},
		genN, genRaw,
	))

	properties.Property("adjacency sequences are sorted", prop.ForAll(
		func(n int, raw []int) bool {
			edges := edgesFrom(n, raw)
			for _, build := range []func(int, []Edge) (*Graph, error){BuildDirected, BuildUndirected} {
				g, err := build(n, edges)
				if err != nil {
					return false
				}
				for i := 0; i < g.NumNodes(); i++ {
					if !slices.IsSorted(g.Out(i)) {
						return false
					}
				}
			}
			return true
		},
		genN, genRaw,
	))

	properties.Property("neighbors stay in range", prop.ForAll(
		func(n int, raw []int) bool {
			g, _ := BuildUndirected(n, edgesFrom(n, raw))
			for i := 0; i < g.NumNodes(); i++ {
				for _, v := range g.Out(i) {
					if v < 0 || v >= n {
						return false
					}
				}
			}
			return g.NumNodes() == n
		},
		genN, genRaw,
	))

	properties.Property("directed build keeps every edge", prop.ForAll(
		func(n int, raw []int) bool {
			edges := edgesFrom(n, raw)
			g, _ := BuildDirected(n, edges)
			return g.EdgeCount() == len(edges)
		},
		genN, genRaw,
	))

	properties.Property("undirected build is symmetric", prop.ForAll(
		func(n int, raw []int) bool {
			g, _ := BuildUndirected(n, edgesFrom(n, raw))
			for u := 0; u < n; u++ {
				for _, v := range g.Out(u) {
					if !slices.Contains(g.Out(v), u) {
						return false
					}
				}
			}
			return g.EdgeCount() == 2*len(edgesFrom(n, raw))
		},
		genN, genRaw,
	))

	properties.Property("dedupe leaves no repeated pair", prop.ForAll(
		func(n int, raw []int) bool {
			edges := edgesFrom(n, raw)
			unique := Dedupe(edges)
			seen := make(map[Edge]bool)
			for _, e := range unique {
				if seen[e] {
					return false
				}
				seen[e] = true
			}
			for _, e := range edges {
				if !seen[e] {
					return false
				}
			}
			return true
		},
		genN, genRaw,
	))

	properties.TestingRun(t)
}
