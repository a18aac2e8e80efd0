package pg

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/ArangoDB-Community/ArangoRDF/rdf"
)

// Document keys are deterministic digests of the originating RDF term so
// repeated imports of the same statement set are idempotent upserts.

// IRIKey returns the document key for an IRI: the md5 hex digest of the
// IRI string.
func IRIKey(iri string) string {
	return digest(iri)
}

// BlankNodeKey returns the document key for a blank node. Blank-node
// identifiers are already collection-scoped opaque ids; they only need
// sanitizing into the storage key alphabet.
func BlankNodeKey(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == ':', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// LiteralKey returns the document key for a literal: the md5 hex digest of
// its value, datatype, and language tag together.
func LiteralKey(l rdf.Literal) string {
	return digest(l.Value + l.Datatype + l.Lang)
}

// TermKey returns the document key for any base term.
func TermKey(t rdf.Term) string {
	switch v := t.(type) {
	case rdf.IRI:
		return IRIKey(v.Value)
	case rdf.BlankNode:
		return BlankNodeKey(v.ID)
	case rdf.Literal:
		return LiteralKey(v)
	default:
		return digest(t.String())
	}
}

// EdgeKey returns the edge key for a statement edge: the md5 hex digest of
// the endpoint handles, the predicate digest, and the graph context.
func EdgeKey(from, predicateIRI, to, graph string) string {
	return digest(from + digest(predicateIRI) + to + graph)
}

func digest(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
