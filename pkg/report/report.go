// Package report packages a ranking as a persistable, printable document.
//
// A [Report] snapshots one pipeline run: the options that shaped it, the
// graph size and the ranked entries. Reports are written as a terminal
// table, JSON or CSV, and can be kept in a [Store]. [MongoStore] keeps them
// in MongoDB; [MemoryStore] is the in-process default.
package report

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/hubrank/pkg/centrality"
	"github.com/matzehuels/hubrank/pkg/pipeline"
)

// ErrNotFound is returned when no report matches a lookup.
var ErrNotFound = errors.New("report not found")

// Report is one ranking snapshot.
type Report struct {
	ID          string             `json:"id" bson:"_id"`
	GeneratedAt time.Time          `json:"generated_at" bson:"generated_at"`
	Mode        string             `json:"mode" bson:"mode"`
	Dedupe      string             `json:"dedupe" bson:"dedupe"`
	InputHash   string             `json:"input_hash" bson:"input_hash"`
	Nodes       int                `json:"nodes" bson:"nodes"`
	Edges       int                `json:"edges" bson:"edges"`
	Entries     []centrality.Entry `json:"entries" bson:"entries"`
}

// New builds a report from a pipeline result and the options that produced
// it. opts must have been validated.
func New(res *pipeline.Result, opts pipeline.Options) *Report {
	entries := res.Ranking
	if entries == nil {
		entries = []centrality.Entry{}
	}
	return &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC().Truncate(time.Millisecond),
		Mode:        opts.Mode,
		Dedupe:      opts.Dedupe,
		InputHash:   res.InputHash,
		Nodes:       res.Stats.Nodes,
		Edges:       res.Stats.Edges,
		Entries:     entries,
	}
}

// ValidID reports whether id is a well-formed report id.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
