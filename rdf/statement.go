package rdf

import "fmt"

// Statement is a single RDF triple, optionally carrying a named-graph
// context. The subject must be an IRI or blank node; the object may be any
// term. Statements are immutable input owned by a transformation run.
type Statement struct {
	Subject   Term
	Predicate IRI
	Object    Term

	// Graph is the named-graph context for quads. Empty for the default
	// graph.
	Graph string
}

// NewStatement creates a triple in the default graph.
func NewStatement(s Term, p IRI, o Term) Statement {
	return Statement{Subject: s, Predicate: p, Object: o}
}

// String returns an N-Quads style rendering of the statement.
func (s Statement) String() string {
	if s.Graph != "" {
		return fmt.Sprintf("%s <%s> %s <%s> .", s.Subject, s.Predicate.Value, s.Object, s.Graph)
	}
	return fmt.Sprintf("%s <%s> %s .", s.Subject, s.Predicate.Value, s.Object)
}

// Valid reports whether the statement is well formed: a resource subject,
// a non-empty predicate IRI, and a non-nil object. Quoted-triple terms are
// well formed here; the transformers flatten or report them separately.
func (s Statement) Valid() bool {
	if s.Subject == nil || s.Object == nil || s.Predicate.Value == "" {
		return false
	}
	switch s.Subject.Kind() {
	case KindIRI, KindBlankNode, KindTriple:
		return true
	default:
		return false
	}
}

// Subjects returns the distinct subject terms of stmts in first-seen order.
func Subjects(stmts []Statement) []Term {
	seen := make(map[string]bool, len(stmts))
	var out []Term
	for _, st := range stmts {
		key := st.Subject.String()
		if !seen[key] {
			seen[key] = true
			out = append(out, st.Subject)
		}
	}
	return out
}

// Predicates returns the distinct predicate IRIs of stmts in first-seen
// order.
func Predicates(stmts []Statement) []IRI {
	seen := make(map[string]bool, len(stmts))
	var out []IRI
	for _, st := range stmts {
		if !seen[st.Predicate.Value] {
			seen[st.Predicate.Value] = true
			out = append(out, st.Predicate)
		}
	}
	return out
}
