// Package transform implements the three transformation passes of the
// engine: RPT (topology-preserving RDF→PG), PGT (property-graph-preserving
// RDF→PG), and the reverse PG→RDF reconstruction. Each invocation builds
// its own derived state (taxonomy index, type assignment, collection
// assignments, list-node table) and discards it when the pass ends;
// concurrent runs must each use their own transformer value.
package transform

import (
	"github.com/ArangoDB-Community/ArangoRDF/mapper"
	"github.com/ArangoDB-Community/ArangoRDF/rdf"
)

// ListConversionMode selects how array-valued vertex properties convert
// back to RDF.
type ListConversionMode string

const (
	// ListRepeatStatements expands an array into one statement per
	// element, repeating the predicate.
	ListRepeatStatements ListConversionMode = "repeat-statements"
	// ListStructure rebuilds an rdf:first/rdf:rest collection.
	ListStructure ListConversionMode = "list-structure"
	// ListContainerStructure rebuilds an rdf:Seq container with rdf:_n
	// membership statements.
	ListContainerStructure ListConversionMode = "container-structure"
	// ListSerializeJSON emits the whole array as one JSON-serialized
	// literal.
	ListSerializeJSON ListConversionMode = "serialize-json"
)

// DictConversionMode selects how object-valued vertex properties convert
// back to RDF.
type DictConversionMode string

const (
	// DictBlankNodeStructure expands an object into a blank node with one
	// statement per entry.
	DictBlankNodeStructure DictConversionMode = "blank-node-structure"
	// DictSerializeJSON emits the whole object as one JSON-serialized
	// literal.
	DictSerializeJSON DictConversionMode = "serialize-json"
)

// DefaultNamespace is the base IRI under which synthetic terms and
// property predicates are minted when no namespace is configured.
const DefaultNamespace = "http://www.arangodb.com/"

// Options is the configuration surface shared by the transformers. The
// zero value is usable; defaults are applied by withDefaults.
type Options struct {
	// Contextualize enables domain/range type inference and the
	// materialization of predicate documents.
	Contextualize bool

	// Ontology holds pre-loaded ontology statements consulted by the
	// taxonomy index and the contextualizer, and transformed along with
	// the data when contextualization is on. When nil and Contextualize
	// is set, the RDF/RDFS/OWL core vocabulary is used for inference
	// without being materialized.
	Ontology []rdf.Statement

	// ListConversion selects the PG→RDF array conversion mode.
	// Default ListRepeatStatements.
	ListConversion ListConversionMode

	// DictConversion selects the PG→RDF object conversion mode.
	// Default DictBlankNodeStructure.
	DictConversion DictConversionMode

	// IncludeCollectionStatements adds an adb:collection statement per
	// exported resource (round-trip fidelity).
	IncludeCollectionStatements bool

	// IncludeKeyStatements adds an adb:key statement per exported
	// resource (round-trip fidelity).
	IncludeKeyStatements bool

	// ReifyEdgeProperties reifies edges that carry attributes into
	// statement resources on export instead of dropping the attributes.
	ReifyEdgeProperties bool

	// FallbackCollection receives resources with no type information.
	// Default mapper.DefaultFallbackCollection.
	FallbackCollection string

	// Namespace is the base IRI for synthetic terms and property
	// predicates. Default DefaultNamespace.
	Namespace string

	// Seed pre-pins collection assignments replayed from a previous run.
	Seed map[string]mapper.Assignment
}

func (o Options) withDefaults() Options {
	if o.ListConversion == "" {
		o.ListConversion = ListRepeatStatements
	}
	if o.DictConversion == "" {
		o.DictConversion = DictBlankNodeStructure
	}
	if o.FallbackCollection == "" {
		o.FallbackCollection = mapper.DefaultFallbackCollection
	}
	if o.Namespace == "" {
		o.Namespace = DefaultNamespace
	}
	return o
}
