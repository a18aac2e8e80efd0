package pg

// Edge is a property-graph edge record connecting two documents.
type Edge struct {
	// Key uniquely identifies the edge within its collection.
	Key string `json:"_key"`

	// Collection is the edge collection holding the edge.
	Collection string `json:"-"`

	// From and To are fully qualified document handles.
	From string `json:"_from"`
	To   string `json:"_to"`

	// Label is the human-readable edge label, the local name of the
	// originating predicate.
	Label string `json:"label,omitempty"`

	// Properties contains edge attributes, including the reserved _iri
	// attribute holding the full predicate IRI.
	Properties map[string]any `json:"properties,omitempty"`
}

// NewEdge creates an edge between two document handles with an
// initialized property map.
func NewEdge(collection, key, from, to string) *Edge {
	return &Edge{
		Key:        key,
		Collection: collection,
		From:       from,
		To:         to,
		Properties: make(map[string]any),
	}
}

// ID returns the fully qualified edge handle "collection/key".
func (e *Edge) ID() string { return e.Collection + "/" + e.Key }

// WithLabel sets the edge label and returns the edge for chaining.
func (e *Edge) WithLabel(label string) *Edge {
	e.Label = label
	return e
}

// WithProperty sets a single attribute and returns the edge for chaining.
func (e *Edge) WithProperty(key string, value any) *Edge {
	if e.Properties == nil {
		e.Properties = make(map[string]any)
	}
	e.Properties[key] = value
	return e
}

// PredicateIRI returns the full predicate IRI stored on the edge, if any.
func (e *Edge) PredicateIRI() string {
	if iri, ok := e.Properties[AttrIRI].(string); ok {
		return iri
	}
	return ""
}

// Metagraph selects which collections, and optionally which attributes per
// collection, participate in a graph-to-RDF export. A nil attribute slice
// selects every attribute of the collection.
type Metagraph struct {
	VertexCollections map[string][]string `json:"vertexCollections"`
	EdgeCollections   map[string][]string `json:"edgeCollections"`
}

// SelectsAttribute reports whether the metagraph exports the given vertex
// attribute. Reserved underscore attributes are handled by the exporter
// regardless of selection.
func (m Metagraph) SelectsAttribute(collection, attr string) bool {
	attrs, ok := m.VertexCollections[collection]
	if !ok {
		return false
	}
	if len(attrs) == 0 {
		return true
	}
	for _, a := range attrs {
		if a == attr {
			return true
		}
	}
	return false
}
