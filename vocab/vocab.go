// Package vocab defines the W3C vocabulary IRIs the engine recognizes and
// the reserved ArangoDB namespace used for collection and key overrides.
package vocab

import (
	"strconv"
	"strings"
)

// RDF core vocabulary.
const (
	RDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	RDFType      = RDF + "type"
	RDFFirst     = RDF + "first"
	RDFRest      = RDF + "rest"
	RDFNil       = RDF + "nil"
	RDFLi        = RDF + "li"
	RDFStatement = RDF + "Statement"
	RDFSubject   = RDF + "subject"
	RDFPredicate = RDF + "predicate"
	RDFObject    = RDF + "object"
	RDFSeq       = RDF + "Seq"
	RDFBag       = RDF + "Bag"
	RDFList      = RDF + "List"
	RDFProperty  = RDF + "Property"
)

// RDFS vocabulary.
const (
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"

	RDFSSubClassOf    = RDFS + "subClassOf"
	RDFSSubPropertyOf = RDFS + "subPropertyOf"
	RDFSDomain        = RDFS + "domain"
	RDFSRange         = RDFS + "range"
	RDFSClass         = RDFS + "Class"
	RDFSResource      = RDFS + "Resource"
	RDFSLabel         = RDFS + "label"
	RDFSComment       = RDFS + "comment"
	RDFSLiteral       = RDFS + "Literal"
)

// OWL vocabulary.
const (
	OWL = "http://www.w3.org/2002/07/owl#"

	OWLClass            = OWL + "Class"
	OWLObjectProperty   = OWL + "ObjectProperty"
	OWLDatatypeProperty = OWL + "DatatypeProperty"
	OWLSameAs           = OWL + "sameAs"
)

// XSD datatypes.
const (
	XSD = "http://www.w3.org/2001/XMLSchema#"

	XSDString  = XSD + "string"
	XSDInteger = XSD + "integer"
	XSDDouble  = XSD + "double"
	XSDBoolean = XSD + "boolean"
)

// Reserved ArangoDB namespace. The engine consumes exactly two predicates
// under it: collection overrides and key overrides (first rule of the
// collection-mapping process), and emits them back when round-trip
// fidelity statements are requested.
const (
	ADB = "http://www.arangodb.com/"

	ADBCollection = ADB + "collection"
	ADBKey        = ADB + "key"
)

// ContainerMemberIndex parses an rdf:_n container-membership predicate and
// returns its 1-based index. ok is false for any other IRI.
func ContainerMemberIndex(iri string) (int, bool) {
	rest, found := strings.CutPrefix(iri, RDF+"_")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// ContainerMember returns the rdf:_n membership predicate for a 1-based
// index.
func ContainerMember(n int) string {
	return RDF + "_" + strconv.Itoa(n)
}
