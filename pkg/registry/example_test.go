package registry_test

import (
	"fmt"

	"github.com/matzehuels/hubrank/pkg/registry"
)

func ExampleRegistry_AssignOrGet() {
	r := registry.New()
	fmt.Println(r.AssignOrGet("JFK"), r.AssignOrGet("LAX"), r.AssignOrGet("JFK"))
	fmt.Println(r.Keys())
	// Output:
	// 0 1 0
	// [JFK LAX]
}

func ExampleFromPairs() {
	r, edges := registry.FromPairs([]registry.Pair{
		{From: "JFK", To: "LAX"},
		{From: "LAX", To: "SFO"},
	})
	fmt.Println(r.Keys())
	fmt.Println(edges)
	// Output:
	// [JFK LAX SFO]
	// [0->1 1->2]
}
