// Package registry assigns dense integer ids to string keys.
//
// A [Registry] maps each distinct key (an airport code, for example) to an
// id in [0, Len()). Ids are handed out in first-encounter order starting at
// 0, are never reused, and are never skipped, so the id space can index a
// slice directly. The mapping is queryable in both directions.
//
//	r := registry.New()
//	r.AssignOrGet("JFK") // 0
//	r.AssignOrGet("LAX") // 1
//	r.AssignOrGet("JFK") // 0
//	r.Key(1)             // "LAX", true
//
// # Determinism
//
// Ids depend only on the order in which keys are first seen. Callers that
// register keys from a hash-based collection get a different assignment on
// every run; register from an ordered sequence instead. [FromPairs] does this
// for the route relation: it walks pairs in order, registering the source and
// then the destination of each one.
//
// # Concurrency
//
// A Registry is not safe for concurrent use. It is built once by a single
// goroutine and read afterwards.
package registry

import "github.com/matzehuels/hubrank/pkg/graph"

// Registry is a bijective key <-> id mapping with dense ids.
// The zero value is not usable; use New.
type Registry struct {
	ids  map[string]int
	keys []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{ids: make(map[string]int)}
}

// WithCapacity creates an empty registry sized for n keys.
func WithCapacity(n int) *Registry {
	return &Registry{
		ids:  make(map[string]int, n),
		keys: make([]string, 0, n),
	}
}

// AssignOrGet returns the id for key, allocating the next unused id on first
// sight. The empty string is a key like any other.
func (r *Registry) AssignOrGet(key string) int {
	if id, ok := r.ids[key]; ok {
		return id
	}
	id := len(r.keys)
	r.ids[key] = id
	r.keys = append(r.keys, key)
	return id
}

// ID returns the id assigned to key and whether key has been registered.
func (r *Registry) ID(key string) (int, bool) {
	id, ok := r.ids[key]
	return id, ok
}

// Key returns the key registered under id and whether id is in range.
func (r *Registry) Key(id int) (string, bool) {
	if id < 0 || id >= len(r.keys) {
		return "", false
	}
	return r.keys[id], true
}

// Keys returns the registered keys indexed by id.
// The returned slice must not be modified.
func (r *Registry) Keys() []string { return r.keys }

// Len returns the number of registered keys, which is also the next id.
func (r *Registry) Len() int { return len(r.keys) }

// Pair is an ordered (source, destination) key pair.
type Pair struct {
	From string
	To   string
}

// FromPairs registers every key of pairs in first-encounter order and
// returns the registry together with the pairs expressed as id edges.
// The i-th edge corresponds to pairs[i].
func FromPairs(pairs []Pair) (*Registry, []graph.Edge) {
	r := WithCapacity(len(pairs))
	edges := make([]graph.Edge, len(pairs))
	for i, p := range pairs {
		from := r.AssignOrGet(p.From)
		to := r.AssignOrGet(p.To)
		edges[i] = graph.Edge{From: from, To: to}
	}
	return r, edges
}
