// Package pg defines the abstract property-graph records the engine emits
// and consumes: vertex documents, edge documents, and the metagraph used
// to select collections and attributes on export. The records are
// storage-agnostic; persistence belongs to the storage collaborator.
package pg

// Reserved attribute names. Attributes with a leading underscore carry
// the RDF origin of a record and are excluded from property export.
const (
	AttrIRI      = "_iri"
	AttrValue    = "_value"
	AttrDatatype = "_type"
	AttrLang     = "_lang"
	AttrTermKind = "_rdftype"
)

// Term-kind tags stored under AttrTermKind.
const (
	TermKindIRI       = "iri"
	TermKindBlankNode = "bnode"
	TermKindLiteral   = "literal"
)

// Document is a property-graph vertex record in a named collection.
type Document struct {
	// Key uniquely identifies the document within its collection.
	Key string `json:"_key"`

	// Collection is the vertex collection holding the document.
	Collection string `json:"-"`

	// Properties contains the document attributes, including reserved
	// underscore attributes describing the record's RDF origin.
	Properties map[string]any `json:"properties,omitempty"`
}

// NewDocument creates a document in the given collection with an
// initialized property map.
func NewDocument(collection, key string) *Document {
	return &Document{
		Key:        key,
		Collection: collection,
		Properties: make(map[string]any),
	}
}

// ID returns the fully qualified document handle "collection/key".
func (d *Document) ID() string { return d.Collection + "/" + d.Key }

// WithProperty sets a single attribute and returns the document for
// chaining.
func (d *Document) WithProperty(key string, value any) *Document {
	if d.Properties == nil {
		d.Properties = make(map[string]any)
	}
	d.Properties[key] = value
	return d
}

// AppendProperty accumulates repeated values under one attribute: the
// first value is stored as a scalar, subsequent values promote the
// attribute to an array. Repeated predicates on one subject land here.
func (d *Document) AppendProperty(key string, value any) *Document {
	if d.Properties == nil {
		d.Properties = make(map[string]any)
	}
	existing, ok := d.Properties[key]
	if !ok {
		d.Properties[key] = value
		return d
	}
	if arr, ok := existing.([]any); ok {
		d.Properties[key] = append(arr, value)
		return d
	}
	d.Properties[key] = []any{existing, value}
	return d
}
