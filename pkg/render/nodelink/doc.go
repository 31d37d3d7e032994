// Package nodelink renders route graphs as node-link diagrams.
//
// # Overview
//
// A full route network has thousands of nodes, far too many to draw. The
// usual input is a subset: the top-ranked airports, optionally with their
// direct neighbors. [Subset] computes such a subset and [ToDOT] emits
// Graphviz source restricted to it. Directed graphs become a digraph;
// undirected graphs become a graph with each connection drawn once.
//
// # Usage
//
//	nodes := nodelink.Subset(g, []int{4, 17, 2}, true)
//	dot := nodelink.ToDOT(g, nodelink.Options{Nodes: nodes, Labels: labels})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Node size grows with degree; nodes from [Options.Highlight] are filled.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion lives in the parent render package.
package nodelink
