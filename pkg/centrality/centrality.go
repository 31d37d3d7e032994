// Package centrality scores and ranks graph nodes by degree.
//
// [Degree] returns the raw length of every node's adjacency sequence: the
// out-degree of a directed graph, or the total degree of an undirected one.
// Scores are counts, never divided by n-1.
//
// [Rank] turns scores into a labeled, descending ranking. Nodes without a
// label are left out. Nodes with equal degree are ordered by ascending id,
// so a ranking is fully determined by its inputs.
package centrality

import (
	"cmp"
	"slices"

	"github.com/matzehuels/hubrank/pkg/graph"
)

// DefaultTop is the ranking size used when none is given.
const DefaultTop = 10

// Scores holds one degree per node id.
type Scores []int

// Entry is one row of a ranking.
type Entry struct {
	ID     int    `json:"id"`
	Label  string `json:"label"`
	Degree int    `json:"degree"`
}

// Degree computes the degree of every node: Scores[i] == len(g.Out(i)).
func Degree(g *graph.Graph) Scores {
	scores := make(Scores, g.NumNodes())
	for i := range scores {
		scores[i] = len(g.Out(i))
	}
	return scores
}

// Max returns the highest score and its id, or (-1, 0) for no nodes.
func (s Scores) Max() (id, degree int) {
	id = -1
	for i, d := range s {
		if id == -1 || d > degree {
			id, degree = i, d
		}
	}
	return id, degree
}

// Total returns the sum of all scores.
func (s Scores) Total() int {
	total := 0
	for _, d := range s {
		total += d
	}
	return total
}

// Rank labels scores, drops ids missing from labels, and sorts by degree
// descending with ties broken by ascending id. A positive k truncates the
// result to the first k entries; k <= 0 keeps all of them.
func Rank(scores Scores, labels map[int]string, k int) []Entry {
	entries := make([]Entry, 0, len(labels))
	for id, d := range scores {
		label, ok := labels[id]
		if !ok {
			continue
		}
		entries = append(entries, Entry{ID: id, Label: label, Degree: d})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Degree, a.Degree); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if k > 0 && len(entries) > k {
		entries = entries[:k]
	}
	return entries
}
