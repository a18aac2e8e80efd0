package mapper

import (
	"github.com/ArangoDB-Community/ArangoRDF/inference"
	"github.com/ArangoDB-Community/ArangoRDF/pg"
	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/taxonomy"
	"github.com/ArangoDB-Community/ArangoRDF/vocab"
)

// Assignment is a resolved (collection, key) pair for one resource.
type Assignment struct {
	Collection string `json:"collection"`
	Key        string `json:"key"`
}

// Resolver computes and memoizes collection assignments for the duration
// of one transformation run. A resource resolves to exactly one assignment
// per run: re-resolving returns the identical value, which keeps edge
// endpoint references stable.
//
// Resolver is per-run derived state and is not safe for concurrent use.
type Resolver struct {
	mapper    Mapper
	tax       *taxonomy.Index
	types     *inference.TypeAssignment
	overrides map[rdf.Term]string
	keys      map[rdf.Term]string
	cache     map[rdf.Term]Assignment

	// seeded holds replayed assignments from a previous run, keyed by term
	// rendering. Seeded entries win over fresh resolution.
	seeded map[string]Assignment
}

// NewResolver builds a resolver for one run. It scans stmts once for
// adb:collection and adb:key override statements with literal objects;
// those take precedence over every type-based rule.
func NewResolver(stmts []rdf.Statement, types *inference.TypeAssignment, tax *taxonomy.Index, m Mapper) *Resolver {
	if m == nil {
		m = Default{}
	}
	r := &Resolver{
		mapper:    m,
		tax:       tax,
		types:     types,
		overrides: make(map[rdf.Term]string),
		keys:      make(map[rdf.Term]string),
		cache:     make(map[rdf.Term]Assignment),
	}
	for _, st := range stmts {
		lit, ok := st.Object.(rdf.Literal)
		if !ok {
			continue
		}
		switch st.Predicate.Value {
		case vocab.ADBCollection:
			r.overrides[st.Subject] = lit.Value
		case vocab.ADBKey:
			r.keys[st.Subject] = lit.Value
		}
	}
	return r
}

// IsOverrideStatement reports whether st is an adb:collection or adb:key
// override. Override statements configure the mapping and are not data:
// the transformers exclude them from vertex/edge emission.
func IsOverrideStatement(st rdf.Statement) bool {
	switch st.Predicate.Value {
	case vocab.ADBCollection, vocab.ADBKey:
		_, ok := st.Object.(rdf.Literal)
		return ok
	}
	return false
}

// Resolve returns the memoized assignment for a resource, computing it on
// first use.
func (r *Resolver) Resolve(resource rdf.Term) Assignment {
	if a, ok := r.cache[resource]; ok {
		return a
	}
	a, ok := r.seeded[resource.String()]
	if !ok {
		a = Assignment{
			Collection: r.collection(resource),
			Key:        r.key(resource),
		}
	}
	r.cache[resource] = a
	return a
}

// ResolvePredicate returns the assignment for a predicate document.
// Predicate IRIs never pass through the type-based rules; they always land
// in the fixed Property collection.
func (r *Resolver) ResolvePredicate(p rdf.IRI) Assignment {
	if a, ok := r.cache[p]; ok {
		return a
	}
	a := Assignment{Collection: PropertyCollection, Key: pg.IRIKey(p.Value)}
	r.cache[p] = a
	return a
}

func (r *Resolver) collection(resource rdf.Term) string {
	if name, ok := r.overrides[resource]; ok {
		return name
	}
	var types []string
	if r.types != nil {
		types = r.types.Effective(resource)
	}
	return r.mapper.Resolve(resource, types, r.tax)
}

func (r *Resolver) key(resource rdf.Term) string {
	if key, ok := r.keys[resource]; ok {
		return key
	}
	return pg.TermKey(resource)
}

// Snapshot copies the memoized assignments, keyed by term rendering, for
// callers that persist and replay assignments across runs.
func (r *Resolver) Snapshot() map[string]Assignment {
	out := make(map[string]Assignment, len(r.cache))
	for term, a := range r.cache {
		out[term.String()] = a
	}
	return out
}

// Seed pre-populates the resolver from a persisted snapshot. Seeded
// entries win over fresh resolution, which lets a caller pin the
// assignments of a previous run.
func (r *Resolver) Seed(snapshot map[string]Assignment) {
	if len(snapshot) == 0 {
		return
	}
	if r.seeded == nil {
		r.seeded = make(map[string]Assignment, len(snapshot))
	}
	for rendered, a := range snapshot {
		r.seeded[rendered] = a
	}
}
