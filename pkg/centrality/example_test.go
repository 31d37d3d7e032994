package centrality_test

import (
	"fmt"

	"github.com/matzehuels/hubrank/pkg/centrality"
	"github.com/matzehuels/hubrank/pkg/graph"
)

func ExampleDegree() {
	edges := []graph.Edge{{From: 0, To: 1}, {From: 0, To: 2}, {From: 1, To: 2}}

	directed, _ := graph.BuildDirected(3, edges)
	undirected, _ := graph.BuildUndirected(3, edges)

	fmt.Println(centrality.Degree(directed))
	fmt.Println(centrality.Degree(undirected))
	// Output:
	// [2 1 0]
	// [2 2 2]
}

func ExampleRank() {
	scores := centrality.Scores{4, 9, 4, 1}
	labels := map[int]string{0: "Atlanta", 1: "Chicago O'Hare", 2: "Denver"}

	for _, e := range centrality.Rank(scores, labels, 2) {
		fmt.Printf("%s: %d\n", e.Label, e.Degree)
	}
	// Output:
	// Chicago O'Hare: 9
	// Atlanta: 4
}
