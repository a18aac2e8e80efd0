package transform

import (
	"github.com/google/uuid"

	"github.com/ArangoDB-Community/ArangoRDF/mapper"
)

// Report summarizes one transformation run.
type Report struct {
	// Graph is the target graph name.
	Graph string `json:"graph"`

	// RunID uniquely identifies the invocation.
	RunID string `json:"run_id"`

	// Statements is the number of RDF statements consumed or produced.
	Statements int `json:"statements"`

	// Documents and Edges count the property-graph records written or
	// read.
	Documents int `json:"documents"`
	Edges     int `json:"edges"`

	// TruncatedLists holds the cell ids of malformed list structures that
	// were truncated rather than failing the run.
	TruncatedLists []string `json:"truncated_lists,omitempty"`

	// Unsupported holds the rendering of each statement that could not be
	// transformed (for example, RDF-star constructs that cannot be
	// represented via reification). Each is reported at least once per
	// run; the caller decides whether to drop or rewrite them.
	Unsupported []string `json:"unsupported,omitempty"`

	// Assignments is the collection-assignment snapshot of a PGT run,
	// keyed by term rendering. Callers may persist it and replay it into
	// a later run.
	Assignments map[string]mapper.Assignment `json:"assignments,omitempty"`
}

func newReport(graph string) *Report {
	return &Report{Graph: graph, RunID: uuid.NewString()}
}
