// Package graph builds fixed-size adjacency-list graphs over dense node ids.
//
// Nodes are integers in [0, n). An [Edge] is an ordered pair (From, To)
// meaning the arc From -> To. A [Graph] stores, for every node, the sequence
// of its successors sorted ascending with duplicates kept as inserted.
//
// # Building
//
// [BuildDirected] allocates n empty sequences, appends To to From's sequence
// for every edge, and sorts each sequence:
//
//	g, err := graph.BuildDirected(3, []graph.Edge{{0, 1}, {0, 2}, {1, 2}})
//	// g.Out(0) == [1 2], g.Out(1) == [2], g.Out(2) == []
//
// [BuildUndirected] performs the directed build, inserts every reversed edge
// into the same storage, and sorts again. The result is symmetric: v appears
// in Out(u) iff u appears in Out(v). There is no separate undirected
// representation; [Graph.Directed] only records which build produced it.
//
// # Preconditions
//
// Every endpoint must lie in [0, n). The builders check all edges before
// touching any storage and return an [*EdgeError] naming the first offending
// edge, so a failed build never yields a partially filled graph. Self-loops
// (u == v) are valid edges; in an undirected build a self-loop contributes
// two entries to its node's sequence.
//
// # Duplicates
//
// Repeated edges are kept. Callers that want set semantics run [Dedupe] on
// the edge list before building.
//
// # Concurrency
//
// Graphs are immutable once built and safe for concurrent reads.
package graph
