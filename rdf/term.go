// Package rdf provides the in-memory RDF term and statement model consumed
// by the transformation engine. Terms form a closed tagged union: every
// term is exactly one of IRI, BlankNode, Literal, or TripleTerm, and all
// three base variants are comparable value types so they can be used
// directly as map keys.
package rdf

import (
	"fmt"
	"strings"
)

// TermKind identifies RDF term variants.
type TermKind uint8

const (
	// KindIRI is an internationalized resource identifier.
	KindIRI TermKind = iota
	// KindBlankNode is an anonymous resource scoped to one statement set.
	KindBlankNode
	// KindLiteral is a typed or plain data value.
	KindLiteral
	// KindTriple is an RDF-star quoted triple. The engine does not store
	// quoted triples directly; they are flattened into reification
	// statements before transformation.
	KindTriple
)

// Term is a value that can appear in an RDF statement. Implementations are
// comparable value types; two terms are identical iff their kinds and
// values are equal.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI names a resource or predicate.
type IRI struct {
	Value string
}

// Kind returns KindIRI.
func (i IRI) Kind() TermKind { return KindIRI }

// String returns the IRI value.
func (i IRI) String() string { return i.Value }

// LocalName returns the fragment of the IRI, or its last path segment when
// it has no fragment.
func (i IRI) LocalName() string { return LocalName(i.Value) }

// BlankNode is an anonymous resource identifier.
type BlankNode struct {
	ID string
}

// Kind returns KindBlankNode.
func (b BlankNode) Kind() TermKind { return KindBlankNode }

// String returns the identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal is a data value with an optional datatype IRI and language tag.
// Only the object position of a statement may hold a literal.
type Literal struct {
	Value    string
	Datatype string
	Lang     string
}

// Kind returns KindLiteral.
func (l Literal) Kind() TermKind { return KindLiteral }

// String returns an N-Triples style rendering of the literal.
func (l Literal) String() string {
	switch {
	case l.Lang != "":
		return fmt.Sprintf("%q@%s", l.Value, l.Lang)
	case l.Datatype != "":
		return fmt.Sprintf("%q^^<%s>", l.Value, l.Datatype)
	default:
		return fmt.Sprintf("%q", l.Value)
	}
}

// TripleTerm is an RDF-star quoted triple appearing in subject or object
// position. TripleTerm is not comparable and never survives past the
// reification flattening pass.
type TripleTerm struct {
	S Term
	P IRI
	O Term
}

// Kind returns KindTriple.
func (t TripleTerm) Kind() TermKind { return KindTriple }

// String returns the quoted-triple rendering.
func (t TripleTerm) String() string {
	return fmt.Sprintf("<<%s %s %s>>", t.S.String(), t.P.String(), t.O.String())
}

// LocalName extracts the local name of an IRI string: the fragment if one
// is present, otherwise the last path segment.
func LocalName(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 && i+1 < len(iri) {
		return iri[i+1:]
	}
	trimmed := strings.TrimRight(iri, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return iri
}

// IsResource reports whether t can appear in subject position, i.e. it is
// an IRI or a blank node.
func IsResource(t Term) bool {
	k := t.Kind()
	return k == KindIRI || k == KindBlankNode
}
