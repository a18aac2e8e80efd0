package vocab

import "github.com/ArangoDB-Community/ArangoRDF/rdf"

// CoreOntology returns the RDF/RDFS/OWL schema statements the
// contextualizer can pre-load: domain/range declarations for the core
// predicates and the subclass relations among the core classes. Loading
// these lets domain/range inference classify schema-level resources (for
// example, the object of an rdf:type statement infers rdfs:Class) without
// the caller supplying an ontology file.
func CoreOntology() []rdf.Statement {
	domain := rdf.IRI{Value: RDFSDomain}
	rng := rdf.IRI{Value: RDFSRange}
	sub := rdf.IRI{Value: RDFSSubClassOf}

	schema := func(p rdf.IRI, s, o string) rdf.Statement {
		return rdf.NewStatement(rdf.IRI{Value: s}, p, rdf.IRI{Value: o})
	}

	return []rdf.Statement{
		schema(rng, RDFType, RDFSClass),
		schema(domain, RDFSSubClassOf, RDFSClass),
		schema(rng, RDFSSubClassOf, RDFSClass),
		schema(domain, RDFSSubPropertyOf, RDFProperty),
		schema(rng, RDFSSubPropertyOf, RDFProperty),
		schema(domain, RDFSDomain, RDFProperty),
		schema(rng, RDFSDomain, RDFSClass),
		schema(domain, RDFSRange, RDFProperty),
		schema(rng, RDFSRange, RDFSClass),
		schema(domain, RDFFirst, RDFList),
		schema(domain, RDFRest, RDFList),
		schema(rng, RDFRest, RDFList),
		schema(domain, RDFSubject, RDFStatement),
		schema(domain, RDFPredicate, RDFStatement),
		schema(domain, RDFObject, RDFStatement),

		schema(sub, OWLClass, RDFSClass),
		schema(sub, OWLObjectProperty, RDFProperty),
		schema(sub, OWLDatatypeProperty, RDFProperty),
	}
}
