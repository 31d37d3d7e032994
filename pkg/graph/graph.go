package graph

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrEdgeOutOfRange is returned by the builders when an edge endpoint
	// lies outside [0, n). It is always wrapped in an *EdgeError.
	ErrEdgeOutOfRange = errors.New("edge endpoint out of range")

	// ErrNegativeSize is returned by the builders when n < 0.
	ErrNegativeSize = errors.New("node count must not be negative")
)

// Edge is a directed arc From -> To between node ids.
type Edge struct {
	From int
	To   int
}

// Reverse returns the edge To -> From.
func (e Edge) Reverse() Edge { return Edge{From: e.To, To: e.From} }

// String formats the edge as "u->v".
func (e Edge) String() string { return fmt.Sprintf("%d->%d", e.From, e.To) }

// EdgeError reports the edge that violated the builder's preconditions.
type EdgeError struct {
	Index int  // position of the edge in the input slice
	Edge  Edge // the offending edge
	N     int  // node count the graph was being built with
}

// Error implements the error interface.
func (e *EdgeError) Error() string {
	return fmt.Sprintf("edge %d (%s): %v: node count is %d", e.Index, e.Edge, ErrEdgeOutOfRange, e.N)
}

// Unwrap returns ErrEdgeOutOfRange.
func (e *EdgeError) Unwrap() error { return ErrEdgeOutOfRange }

// Graph is an adjacency-list graph with a fixed node count.
// The zero value is an empty graph with no nodes.
type Graph struct {
	out      [][]int
	directed bool
}

// BuildDirected builds a directed graph with n nodes from edges.
// Every adjacency sequence is sorted ascending; duplicate edges are kept.
func BuildDirected(n int, edges []Edge) (*Graph, error) {
	g, err := newGraph(n, edges)
	if err != nil {
		return nil, err
	}
	g.directed = true
	g.addEdges(edges)
	g.sortLists()
	return g, nil
}

// BuildUndirected builds the symmetric closure of edges over n nodes:
// the directed graph plus every reversed edge, re-sorted.
func BuildUndirected(n int, edges []Edge) (*Graph, error) {
	g, err := BuildDirected(n, edges)
	if err != nil {
		return nil, err
	}
	g.directed = false
	g.addEdges(Reverse(edges))
	g.sortLists()
	return g, nil
}

// newGraph validates n and every edge, then allocates n empty sequences.
func newGraph(n int, edges []Edge) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSize, n)
	}
	for i, e := range edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return nil, &EdgeError{Index: i, Edge: e, N: n}
		}
	}
	return &Graph{out: make([][]int, n)}, nil
}

func (g *Graph) addEdges(edges []Edge) {
	for _, e := range edges {
		g.out[e.From] = append(g.out[e.From], e.To)
	}
}

func (g *Graph) sortLists() {
	for _, l := range g.out {
		slices.Sort(l)
	}
}

// NumNodes returns the node count fixed at construction.
func (g *Graph) NumNodes() int { return len(g.out) }

// Directed reports whether the graph came from BuildDirected.
func (g *Graph) Directed() bool { return g.directed }

// Out returns the sorted successors of node i. Returns nil if i is out of
// range. The returned slice must not be modified.
func (g *Graph) Out(i int) []int {
	if i < 0 || i >= len(g.out) {
		return nil
	}
	return g.out[i]
}

// Adjacency returns a deep copy of all adjacency sequences, indexed by node.
// Nodes without successors have an empty, non-nil sequence.
func (g *Graph) Adjacency() [][]int {
	adj := make([][]int, len(g.out))
	for i, l := range g.out {
		adj[i] = append(make([]int, 0, len(l)), l...)
	}
	return adj
}

// EdgeCount returns the number of stored arcs. For an undirected graph every
// input edge is stored twice.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, l := range g.out {
		total += len(l)
	}
	return total
}

// String renders the graph for debugging, e.g. "Graph{n: 3, out: [[1 2] [2] []]}".
func (g *Graph) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Graph{n: %d, out: [", len(g.out))
	for i, l := range g.out {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, l)
	}
	b.WriteString("]}")
	return b.String()
}

// Reverse returns a new slice holding every edge reversed.
func Reverse(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	for i, e := range edges {
		out[i] = e.Reverse()
	}
	return out
}

// Dedupe returns edges with repeated (From, To) pairs removed, keeping the
// first occurrence of each pair in input order. (u, v) and (v, u) are
// distinct pairs.
func Dedupe(edges []Edge) []Edge {
	seen := make(map[Edge]struct{}, len(edges))
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
