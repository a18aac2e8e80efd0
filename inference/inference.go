// Package inference implements contextualization: it indexes the declared
// rdfs:domain and rdfs:range of every predicate in a statement set and
// derives type assignments for the resources participating in statements.
//
// Explicit rdf:type information always wins. Inferred classes are only
// consulted for a resource that carries zero explicit type statements;
// they are never merged into, or overwrite, explicit types.
package inference

import (
	"sort"

	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/vocab"
)

// PredicateScope indexes each predicate's declared domains and ranges.
type PredicateScope struct {
	domains map[string]map[string]bool
	ranges  map[string]map[string]bool
}

// BuildScope scans stmts (typically the data set plus any pre-loaded
// ontology statements) for rdfs:domain and rdfs:range declarations with
// IRI subjects and objects.
func BuildScope(stmts []rdf.Statement) *PredicateScope {
	ps := &PredicateScope{
		domains: make(map[string]map[string]bool),
		ranges:  make(map[string]map[string]bool),
	}
	for _, st := range stmts {
		var into map[string]map[string]bool
		switch st.Predicate.Value {
		case vocab.RDFSDomain:
			into = ps.domains
		case vocab.RDFSRange:
			into = ps.ranges
		default:
			continue
		}
		pred, ok := st.Subject.(rdf.IRI)
		if !ok {
			continue
		}
		class, ok := st.Object.(rdf.IRI)
		if !ok {
			continue
		}
		if into[pred.Value] == nil {
			into[pred.Value] = make(map[string]bool)
		}
		into[pred.Value][class.Value] = true
	}
	return ps
}

// Domains returns the declared domain classes of predicate, sorted.
func (ps *PredicateScope) Domains(predicate string) []string {
	return sorted(ps.domains[predicate])
}

// Ranges returns the declared range classes of predicate, sorted.
func (ps *PredicateScope) Ranges(predicate string) []string {
	return sorted(ps.ranges[predicate])
}

// HasScope reports whether predicate declares any domain or range.
func (ps *PredicateScope) HasScope(predicate string) bool {
	return len(ps.domains[predicate]) > 0 || len(ps.ranges[predicate]) > 0
}

// TypeAssignment holds, per resource, the explicit rdf:type classes and
// the domain/range-inferred candidates. It is derived state owned by one
// transformation run.
type TypeAssignment struct {
	explicit map[rdf.Term]map[string]bool
	inferred map[rdf.Term]map[string]bool
}

// BuildTypes computes the type assignment for every resource appearing in
// stmts. Explicit types come from rdf:type statements with IRI-class
// objects. When contextualize is true, each statement (s, p, o) whose
// predicate declares a domain contributes the domain classes as inferred
// candidates for s, and, when o is a resource, declared ranges contribute
// candidates for o.
func BuildTypes(stmts []rdf.Statement, scope *PredicateScope, contextualize bool) *TypeAssignment {
	ta := &TypeAssignment{
		explicit: make(map[rdf.Term]map[string]bool),
		inferred: make(map[rdf.Term]map[string]bool),
	}

	for _, st := range stmts {
		if st.Predicate.Value == vocab.RDFType {
			if class, ok := st.Object.(rdf.IRI); ok {
				add(ta.explicit, st.Subject, class.Value)
				continue
			}
		}
		if !contextualize || scope == nil {
			continue
		}
		for _, class := range scope.Domains(st.Predicate.Value) {
			add(ta.inferred, st.Subject, class)
		}
		if rdf.IsResource(st.Object) {
			for _, class := range scope.Ranges(st.Predicate.Value) {
				add(ta.inferred, st.Object, class)
			}
		}
	}
	return ta
}

// Explicit returns the resource's explicit rdf:type classes, sorted.
func (ta *TypeAssignment) Explicit(resource rdf.Term) []string {
	return sorted(ta.explicit[resource])
}

// HasExplicit reports whether the resource has at least one explicit type.
func (ta *TypeAssignment) HasExplicit(resource rdf.Term) bool {
	return len(ta.explicit[resource]) > 0
}

// Effective returns the class set used for collection mapping: the
// explicit types when any exist, otherwise the inferred candidates.
// The result is sorted.
func (ta *TypeAssignment) Effective(resource rdf.Term) []string {
	if len(ta.explicit[resource]) > 0 {
		return sorted(ta.explicit[resource])
	}
	return sorted(ta.inferred[resource])
}

func add(m map[rdf.Term]map[string]bool, resource rdf.Term, class string) {
	if m[resource] == nil {
		m[resource] = make(map[string]bool)
	}
	m[resource][class] = true
}

func sorted(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
