package transform

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel/trace"

	"github.com/ArangoDB-Community/ArangoRDF/pg"
	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/storage"
	"github.com/ArangoDB-Community/ArangoRDF/vocab"
)

// Exporter is the reverse transformer: it reconstructs RDF statements
// from property-graph records. Records written by RPT or PGT restore
// their original terms from the reserved underscore attributes; native
// records with no RDF origin get terms minted under the configured
// namespace.
type Exporter struct {
	store  storage.Store
	logger *slog.Logger
	inst   *instruments
	opts   Options
}

// NewExporter creates an exporter reading from store. A nil logger falls
// back to slog.Default.
func NewExporter(store storage.Store, logger *slog.Logger, tracer trace.Tracer, opts Options) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{store: store, logger: logger, inst: newInstruments(tracer), opts: opts.withDefaults()}
}

// exportRun holds the per-invocation state of one export pass.
type exportRun struct {
	mg    pg.Metagraph
	terms map[string]rdf.Term
	out   []rdf.Statement
	rep   *Report
	next  int
}

// All exports every vertex and edge collection in the store.
func (e *Exporter) All(ctx context.Context) ([]rdf.Statement, *Report, error) {
	vertex, err := e.store.VertexCollections(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list vertex collections: %w", err)
	}
	edge, err := e.store.EdgeCollections(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list edge collections: %w", err)
	}
	return e.Collections(ctx, vertex, edge)
}

// Collections exports the named collections with every attribute
// selected.
func (e *Exporter) Collections(ctx context.Context, vertex, edge []string) ([]rdf.Statement, *Report, error) {
	mg := pg.Metagraph{
		VertexCollections: make(map[string][]string, len(vertex)),
		EdgeCollections:   make(map[string][]string, len(edge)),
	}
	for _, name := range vertex {
		mg.VertexCollections[name] = nil
	}
	for _, name := range edge {
		mg.EdgeCollections[name] = nil
	}
	return e.Metagraph(ctx, mg)
}

// Metagraph exports the collections and attributes the metagraph
// selects. Edges whose endpoint collection is outside the selection are
// skipped with a warning rather than failing the export.
func (e *Exporter) Metagraph(ctx context.Context, mg pg.Metagraph) ([]rdf.Statement, *Report, error) {
	ctx, span := e.inst.start(ctx, "export", "")
	defer span.End()

	run := &exportRun{
		mg:    mg,
		terms: make(map[string]rdf.Term),
		rep:   newReport(""),
	}

	for _, collection := range sortedKeys(mg.VertexCollections) {
		if err := e.vertexCollection(ctx, run, collection); err != nil {
			return nil, nil, err
		}
	}
	for _, collection := range sortedKeys(mg.EdgeCollections) {
		if err := e.edgeCollection(ctx, run, collection); err != nil {
			return nil, nil, err
		}
	}

	run.rep.Statements = len(run.out)
	e.inst.record(ctx, "", run.rep)
	e.logger.Info("export complete",
		"run", run.rep.RunID,
		"statements", run.rep.Statements,
		"documents", run.rep.Documents,
		"edges", run.rep.Edges,
	)
	return run.out, run.rep, nil
}

func (e *Exporter) vertexCollection(ctx context.Context, run *exportRun, collection string) error {
	docs, err := e.store.Documents(ctx, collection)
	if err != nil {
		return fmt.Errorf("read collection %s: %w", collection, err)
	}
	for _, doc := range docs {
		term := e.term(doc)
		run.terms[doc.ID()] = term
		run.rep.Documents++
		if !rdf.IsResource(term) {
			// Literal documents carry no statements of their own.
			continue
		}
		e.fidelity(run, term, doc.Collection, doc.Key)
		for _, attr := range sortedKeys(doc.Properties) {
			if reserved(attr) || !run.mg.SelectsAttribute(collection, attr) {
				continue
			}
			predicate := rdf.IRI{Value: e.opts.Namespace + attr}
			e.value(run, term, predicate, doc.Properties[attr])
		}
	}
	return nil
}

func (e *Exporter) edgeCollection(ctx context.Context, run *exportRun, collection string) error {
	edges, err := e.store.Edges(ctx, collection)
	if err != nil {
		return fmt.Errorf("read collection %s: %w", collection, err)
	}
	for _, edge := range edges {
		from, okFrom := run.terms[edge.From]
		to, okTo := run.terms[edge.To]
		if !okFrom || !okTo {
			e.logger.Warn("skipping edge with unexported endpoint",
				"edge", edge.ID(),
				"from", edge.From,
				"to", edge.To,
			)
			continue
		}
		run.rep.Edges++

		predicate := rdf.IRI{Value: e.predicateIRI(edge)}
		graph, _ := edge.Properties[AttrGraph].(string)
		st := rdf.NewStatement(from, predicate, to)
		st.Graph = graph
		run.out = append(run.out, st)

		if attrs := e.edgeAttributes(run, edge); len(attrs) > 0 {
			if e.opts.ReifyEdgeProperties {
				e.reifyEdge(run, st, edge, attrs)
			} else {
				e.logger.Warn("dropping edge attributes; reification disabled",
					"edge", edge.ID(),
					"attributes", len(attrs),
				)
			}
		}
	}
	return nil
}

// predicateIRI recovers the predicate of an edge: the recorded _iri
// attribute when present, otherwise an IRI minted from the label or the
// collection name.
func (e *Exporter) predicateIRI(edge *pg.Edge) string {
	if iri := edge.PredicateIRI(); iri != "" {
		return iri
	}
	if edge.Label != "" {
		return e.opts.Namespace + edge.Label
	}
	return e.opts.Namespace + edge.Collection
}

// edgeAttributes returns the exportable non-reserved attribute names of
// an edge, honoring the metagraph's attribute selection.
func (e *Exporter) edgeAttributes(run *exportRun, edge *pg.Edge) []string {
	selected := run.mg.EdgeCollections[edge.Collection]
	var out []string
	for _, attr := range sortedKeys(edge.Properties) {
		if reserved(attr) {
			continue
		}
		if len(selected) > 0 && !contains(selected, attr) {
			continue
		}
		out = append(out, attr)
	}
	return out
}

// reifyEdge mints a statement resource for an edge carrying attributes
// and hangs the attributes off it.
func (e *Exporter) reifyEdge(run *exportRun, st rdf.Statement, edge *pg.Edge, attrs []string) {
	node := run.mint()
	run.out = append(run.out,
		rdf.NewStatement(node, rdf.IRI{Value: vocab.RDFType}, rdf.IRI{Value: vocab.RDFStatement}),
		rdf.NewStatement(node, rdf.IRI{Value: vocab.RDFSubject}, st.Subject),
		rdf.NewStatement(node, rdf.IRI{Value: vocab.RDFPredicate}, st.Predicate),
		rdf.NewStatement(node, rdf.IRI{Value: vocab.RDFObject}, st.Object),
	)
	for _, attr := range attrs {
		predicate := rdf.IRI{Value: e.opts.Namespace + attr}
		e.value(run, node, predicate, edge.Properties[attr])
	}
}

// fidelity adds the round-trip statements recording where a resource was
// stored, when the corresponding options are set.
func (e *Exporter) fidelity(run *exportRun, term rdf.Term, collection, key string) {
	if e.opts.IncludeCollectionStatements {
		run.out = append(run.out, rdf.NewStatement(term,
			rdf.IRI{Value: vocab.ADBCollection},
			rdf.Literal{Value: collection, Datatype: vocab.XSDString}))
	}
	if e.opts.IncludeKeyStatements {
		run.out = append(run.out, rdf.NewStatement(term,
			rdf.IRI{Value: vocab.ADBKey},
			rdf.Literal{Value: key, Datatype: vocab.XSDString}))
	}
}

// value emits the statements for one property value, dispatching arrays
// and objects to their configured conversion modes.
func (e *Exporter) value(run *exportRun, subject rdf.Term, predicate rdf.IRI, v any) {
	switch t := v.(type) {
	case []any:
		e.array(run, subject, predicate, t)
	case map[string]any:
		run.out = append(run.out, rdf.NewStatement(subject, predicate, e.dictTerm(run, t)))
	default:
		run.out = append(run.out, rdf.NewStatement(subject, predicate, pg.ValueLiteral(v)))
	}
}

func (e *Exporter) array(run *exportRun, subject rdf.Term, predicate rdf.IRI, values []any) {
	switch e.opts.ListConversion {
	case ListStructure:
		run.out = append(run.out, rdf.NewStatement(subject, predicate, e.listTerm(run, values)))
	case ListContainerStructure:
		run.out = append(run.out, rdf.NewStatement(subject, predicate, e.containerTerm(run, values)))
	case ListSerializeJSON:
		run.out = append(run.out, rdf.NewStatement(subject, predicate, jsonLiteral(values)))
	default: // ListRepeatStatements
		for _, v := range values {
			e.value(run, subject, predicate, v)
		}
	}
}

// elementTerm converts one array or dict element to an object term,
// recursing into nested structures.
func (e *Exporter) elementTerm(run *exportRun, v any) rdf.Term {
	switch t := v.(type) {
	case []any:
		switch e.opts.ListConversion {
		case ListContainerStructure:
			return e.containerTerm(run, t)
		case ListSerializeJSON:
			return jsonLiteral(t)
		default:
			// Repeat mode has no element form for a nested array; fall
			// back to list structure so the nesting survives.
			return e.listTerm(run, t)
		}
	case map[string]any:
		return e.dictTerm(run, t)
	default:
		return pg.ValueLiteral(v)
	}
}

// listTerm rebuilds an rdf:first/rdf:rest collection and returns its
// head. Empty arrays collapse to rdf:nil.
func (e *Exporter) listTerm(run *exportRun, values []any) rdf.Term {
	if len(values) == 0 {
		return rdf.IRI{Value: vocab.RDFNil}
	}
	head := run.mint()
	cell := head
	for i, v := range values {
		run.out = append(run.out, rdf.NewStatement(cell,
			rdf.IRI{Value: vocab.RDFFirst}, e.elementTerm(run, v)))
		var rest rdf.Term = rdf.IRI{Value: vocab.RDFNil}
		var next rdf.BlankNode
		if i < len(values)-1 {
			next = run.mint()
			rest = next
		}
		run.out = append(run.out, rdf.NewStatement(cell,
			rdf.IRI{Value: vocab.RDFRest}, rest))
		cell = next
	}
	return head
}

// containerTerm rebuilds an rdf:Seq container with rdf:_n membership
// statements and returns the container node.
func (e *Exporter) containerTerm(run *exportRun, values []any) rdf.Term {
	node := run.mint()
	run.out = append(run.out, rdf.NewStatement(node,
		rdf.IRI{Value: vocab.RDFType}, rdf.IRI{Value: vocab.RDFSeq}))
	for i, v := range values {
		run.out = append(run.out, rdf.NewStatement(node,
			rdf.IRI{Value: vocab.ContainerMember(i + 1)}, e.elementTerm(run, v)))
	}
	return node
}

// dictTerm converts an object value per the dict conversion mode: a
// blank node with one statement per entry, or a JSON literal.
func (e *Exporter) dictTerm(run *exportRun, dict map[string]any) rdf.Term {
	if e.opts.DictConversion == DictSerializeJSON {
		return jsonLiteral(dict)
	}
	node := run.mint()
	for _, k := range sortedKeys(dict) {
		predicate := rdf.IRI{Value: e.opts.Namespace + k}
		e.value(run, node, predicate, dict[k])
	}
	return node
}

// term reconstructs the RDF term of a vertex document.
func (e *Exporter) term(doc *pg.Document) rdf.Term {
	if v, ok := doc.Properties[pg.AttrValue]; ok {
		if s, isString := v.(string); isString {
			lit := rdf.Literal{Value: s}
			lit.Datatype, _ = doc.Properties[pg.AttrDatatype].(string)
			lit.Lang, _ = doc.Properties[pg.AttrLang].(string)
			return lit
		}
		return pg.ValueLiteral(v)
	}
	if iri, ok := doc.Properties[pg.AttrIRI].(string); ok && iri != "" {
		return rdf.IRI{Value: iri}
	}
	if kind, _ := doc.Properties[pg.AttrTermKind].(string); kind == pg.TermKindBlankNode {
		return rdf.BlankNode{ID: doc.Key}
	}
	// Native document with no RDF origin: mint a stable IRI from its
	// handle.
	return rdf.IRI{Value: e.opts.Namespace + doc.Collection + "#" + doc.Key}
}

func (run *exportRun) mint() rdf.BlankNode {
	run.next++
	return rdf.BlankNode{ID: fmt.Sprintf("e%d", run.next)}
}

func jsonLiteral(v any) rdf.Literal {
	b, err := json.Marshal(v)
	if err != nil {
		return rdf.Literal{Value: fmt.Sprintf("%v", v), Datatype: vocab.XSDString}
	}
	return rdf.Literal{Value: string(b), Datatype: vocab.XSDString}
}

func reserved(attr string) bool {
	return len(attr) > 0 && attr[0] == '_'
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
