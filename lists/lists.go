// Package lists reconstructs ordered RDF lists and containers from an
// unordered statement set. List cells are held in an explicit
// node/successor table keyed by blank-node identity, built in one pass
// over all statements, then resolved by a separate linking pass; at no
// point does reconstruction depend on statement iteration order.
package lists

import (
	"log/slog"
	"sort"

	"github.com/ArangoDB-Community/ArangoRDF/pg"
	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/vocab"
)

// cell is one blank node participating in list or container structure.
type cell struct {
	// first is the rdf:first element, if any.
	first    rdf.Term
	hasFirst bool

	// next is the blank-node id of the rdf:rest successor. terminated is
	// true when rest points at rdf:nil.
	next       string
	hasNext    bool
	terminated bool

	// members holds container-style elements (rdf:_n) keyed by index.
	members map[int]rdf.Term

	// liCount assigns encounter-order indexes to rdf:li members, which
	// carry no index of their own.
	liCount int
}

// Table is the per-run list-node table. It is derived state owned by one
// transformation run and is not safe for concurrent use.
type Table struct {
	cells     map[string]*cell
	successor map[string]bool

	logger    *slog.Logger
	truncated []string
}

// Build scans stmts once and records every list cell's element and
// successor reference. A nil logger falls back to slog.Default.
func Build(stmts []rdf.Statement, logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Table{
		cells:     make(map[string]*cell),
		successor: make(map[string]bool),
		logger:    logger,
	}
	for _, st := range stmts {
		b, ok := st.Subject.(rdf.BlankNode)
		if !ok {
			continue
		}
		switch {
		case st.Predicate.Value == vocab.RDFFirst:
			c := t.cell(b.ID)
			c.first = st.Object
			c.hasFirst = true
		case st.Predicate.Value == vocab.RDFRest:
			c := t.cell(b.ID)
			switch o := st.Object.(type) {
			case rdf.IRI:
				if o.Value == vocab.RDFNil {
					c.terminated = true
				}
			case rdf.BlankNode:
				c.next = o.ID
				c.hasNext = true
				t.successor[o.ID] = true
				t.cell(o.ID)
			}
		case st.Predicate.Value == vocab.RDFLi:
			c := t.cell(b.ID)
			c.liCount++
			c.members[1_000_000+c.liCount] = st.Object
		default:
			if n, ok := vocab.ContainerMemberIndex(st.Predicate.Value); ok {
				t.cell(b.ID).members[n] = st.Object
			}
		}
	}
	return t
}

func (t *Table) cell(id string) *cell {
	c, ok := t.cells[id]
	if !ok {
		c = &cell{members: make(map[int]rdf.Term)}
		t.cells[id] = c
	}
	return c
}

// IsCell reports whether the blank-node id participates in list structure.
func (t *Table) IsCell(id string) bool {
	_, ok := t.cells[id]
	return ok
}

// Structural reports whether st is internal list structure: any statement
// whose subject is a list cell. Such statements are consumed by the
// reconstructor and excluded from ordinary transformation.
func (t *Table) Structural(st rdf.Statement) bool {
	b, ok := st.Subject.(rdf.BlankNode)
	return ok && t.IsCell(b.ID)
}

// Heads returns the ids of cells that are not any other cell's successor,
// sorted. These are the candidate list heads; whether a head is live is
// decided by the statements referencing it as an object.
func (t *Table) Heads() []string {
	var out []string
	for id := range t.cells {
		if !t.successor[id] {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Sequence resolves the ordered element terms of the chain starting at the
// given cell id. Container members come out in index order. Malformed
// chains (a dangling successor, or a successor cycle) are truncated at the
// failure point and recorded; they never loop.
func (t *Table) Sequence(id string) []rdf.Term {
	var out []rdf.Term
	seen := make(map[string]bool)
	for id != "" {
		if seen[id] {
			t.truncate(id, "successor cycle")
			break
		}
		seen[id] = true

		c, ok := t.cells[id]
		if !ok {
			t.truncate(id, "dangling successor reference")
			break
		}
		if len(c.members) > 0 {
			idxs := make([]int, 0, len(c.members))
			for n := range c.members {
				idxs = append(idxs, n)
			}
			sort.Ints(idxs)
			for _, n := range idxs {
				out = append(out, c.members[n])
			}
		}
		if c.hasFirst {
			out = append(out, c.first)
		}
		if !c.hasNext {
			// rdf:nil terminator or end of a container; a collection cell
			// with neither rest nor terminator simply ends here.
			break
		}
		id = c.next
	}
	return out
}

// Values resolves the chain into plain Go values for property storage:
// literal elements convert to their property values, nested list heads
// recurse into nested arrays, and resource elements are skipped (they
// become edges instead of array entries).
func (t *Table) Values(id string) []any {
	return t.values(id, make(map[string]bool))
}

func (t *Table) values(id string, expanding map[string]bool) []any {
	if expanding[id] {
		t.truncate(id, "nested list cycle")
		return nil
	}
	expanding[id] = true
	defer delete(expanding, id)

	out := make([]any, 0)
	for _, elem := range t.Sequence(id) {
		switch e := elem.(type) {
		case rdf.Literal:
			out = append(out, pg.LiteralValue(e))
		case rdf.BlankNode:
			if t.IsCell(e.ID) {
				out = append(out, t.values(e.ID, expanding))
			}
		}
	}
	return out
}

// Resources resolves the chain into its resource elements: the IRIs and
// non-cell blank nodes that must become edges from the owning document.
// Nested list heads contribute their own resources recursively.
func (t *Table) Resources(id string) []rdf.Term {
	return t.resources(id, make(map[string]bool))
}

func (t *Table) resources(id string, expanding map[string]bool) []rdf.Term {
	if expanding[id] {
		return nil
	}
	expanding[id] = true
	defer delete(expanding, id)

	var out []rdf.Term
	for _, elem := range t.Sequence(id) {
		switch e := elem.(type) {
		case rdf.IRI:
			out = append(out, e)
		case rdf.BlankNode:
			if t.IsCell(e.ID) {
				out = append(out, t.resources(e.ID, expanding)...)
			} else {
				out = append(out, e)
			}
		}
	}
	return out
}

// Truncated returns the cell ids where malformed structure forced
// truncation, in occurrence order.
func (t *Table) Truncated() []string {
	return t.truncated
}

func (t *Table) truncate(id, reason string) {
	t.truncated = append(t.truncated, id)
	t.logger.Warn("truncating malformed RDF list",
		"cell", id,
		"reason", reason,
	)
}
