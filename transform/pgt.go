package transform

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/ArangoDB-Community/ArangoRDF/inference"
	"github.com/ArangoDB-Community/ArangoRDF/lists"
	"github.com/ArangoDB-Community/ArangoRDF/mapper"
	"github.com/ArangoDB-Community/ArangoRDF/pg"
	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/storage"
	"github.com/ArangoDB-Community/ArangoRDF/taxonomy"
	"github.com/ArangoDB-Community/ArangoRDF/vocab"
)

// Canonical edge collections for ontology-shaped statements when
// contextualization materializes them.
const (
	CollectionSubClassOf    = "SubClassOf"
	CollectionSubPropertyOf = "SubPropertyOf"
	CollectionDomain        = "Domain"
	CollectionRange         = "Range"
)

// PGT is the property-graph-preserving transformer: literal-valued
// statements become vertex properties, resource-valued statements become
// edges in a collection named after the predicate, and vertices land in
// the collection chosen by the Mapper. RDF lists are resolved into
// property arrays and element edges before the statement pass runs.
//
// A PGT value holds no cross-run state; concurrent runs should each
// construct their own.
type PGT struct {
	store  storage.Store
	mapper mapper.Mapper
	logger *slog.Logger
	inst   *instruments
	opts   Options
}

// NewPGT creates a PGT transformer writing to store. A nil Mapper uses
// the default rule set; a nil logger falls back to slog.Default.
func NewPGT(store storage.Store, m mapper.Mapper, logger *slog.Logger, tracer trace.Tracer, opts Options) *PGT {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()
	if m == nil {
		m = mapper.Default{Fallback: opts.FallbackCollection}
	}
	return &PGT{store: store, mapper: m, logger: logger, inst: newInstruments(tracer), opts: opts}
}

// pgtRun is the derived-state bundle of one PGT invocation. It is built
// at the start of Transform and garbage once Transform returns; nothing
// in it is shared across runs.
type pgtRun struct {
	graph    string
	resolver *mapper.Resolver
	table    *lists.Table
	rep      *Report

	// docs accumulates the vertex documents of the run so repeated
	// property statements merge before a single upsert per document.
	docs  map[string]*pg.Document
	order []string
}

// Transform imports stmts into the property graph using the
// property-graph-preserving rules. The pass is O(len(stmts)) with an
// additional post-pass over list structure.
func (t *PGT) Transform(ctx context.Context, graph string, stmts []rdf.Statement) (*Report, error) {
	ctx, span := t.inst.start(ctx, "pgt.transform", graph)
	defer span.End()

	f := newFlattener(t.logger)
	data := f.flatten(stmts)

	// Ontology statements always feed the indexes; they join the data
	// only when the caller supplied them and asked for contextualization.
	ontology := t.opts.Ontology
	if ontology == nil && t.opts.Contextualize {
		ontology = vocab.CoreOntology()
	}
	indexed := data
	if len(ontology) > 0 {
		indexed = append(append([]rdf.Statement(nil), data...), ontology...)
	}
	if t.opts.Contextualize && t.opts.Ontology != nil {
		data = indexed
	}

	tax := taxonomy.Build(indexed)
	scope := inference.BuildScope(indexed)
	types := inference.BuildTypes(indexed, scope, t.opts.Contextualize)

	run := &pgtRun{
		graph:    graph,
		resolver: mapper.NewResolver(indexed, types, tax, t.mapper),
		table:    lists.Build(data, t.logger),
		rep:      newReport(graph),
		docs:     make(map[string]*pg.Document),
	}
	run.rep.Unsupported = f.unsupported
	run.resolver.Seed(t.opts.Seed)

	for _, st := range data {
		if err := t.statement(ctx, run, st); err != nil {
			return nil, err
		}
	}
	if t.opts.Contextualize {
		if err := t.materializePredicates(ctx, run, data); err != nil {
			return nil, err
		}
	}
	if err := t.flushDocuments(ctx, run); err != nil {
		return nil, err
	}

	run.rep.TruncatedLists = run.table.Truncated()
	run.rep.Assignments = run.resolver.Snapshot()

	t.inst.record(ctx, graph, run.rep)
	t.logger.Info("pgt transform complete",
		"graph", graph,
		"run", run.rep.RunID,
		"statements", run.rep.Statements,
		"documents", run.rep.Documents,
		"edges", run.rep.Edges,
	)
	return run.rep, nil
}

func (t *PGT) statement(ctx context.Context, run *pgtRun, st rdf.Statement) error {
	if mapper.IsOverrideStatement(st) {
		// Overrides configure the mapping; they are not data.
		return nil
	}
	if run.table.Structural(st) {
		// Internal list structure is consumed by the reconstructor.
		return nil
	}
	run.rep.Statements++

	if t.opts.Contextualize {
		if handled, err := t.ontologyStatement(ctx, run, st); handled || err != nil {
			return err
		}
	}

	switch o := st.Object.(type) {
	case rdf.Literal:
		doc := run.document(st.Subject)
		doc.AppendProperty(st.Predicate.LocalName(), pg.LiteralValue(o))
		return nil
	case rdf.BlankNode:
		if run.table.IsCell(o.ID) {
			return t.attachList(ctx, run, st, o)
		}
		return t.edge(ctx, run, st.Predicate.LocalName(), st.Subject, o, st.Predicate.Value, st.Graph)
	case rdf.IRI:
		return t.edge(ctx, run, st.Predicate.LocalName(), st.Subject, o, st.Predicate.Value, st.Graph)
	default:
		run.rep.Unsupported = append(run.rep.Unsupported, st.String())
		t.logger.Warn("skipping unsupported statement", "statement", st.String())
		return nil
	}
}

// ontologyStatement routes subClassOf / subPropertyOf / domain / range
// statements into their canonical edge collections. Returns handled=false
// for every other predicate.
func (t *PGT) ontologyStatement(ctx context.Context, run *pgtRun, st rdf.Statement) (bool, error) {
	var collection string
	switch st.Predicate.Value {
	case vocab.RDFSSubClassOf:
		collection = CollectionSubClassOf
	case vocab.RDFSSubPropertyOf:
		collection = CollectionSubPropertyOf
	case vocab.RDFSDomain:
		collection = CollectionDomain
	case vocab.RDFSRange:
		collection = CollectionRange
	default:
		return false, nil
	}
	if !rdf.IsResource(st.Object) {
		return false, nil
	}
	return true, t.edge(ctx, run, collection, st.Subject, st.Object, st.Predicate.Value, st.Graph)
}

// attachList resolves a list head referenced by st: literal elements form
// a property array on the owning document, resource elements become edges
// through the original predicate.
func (t *PGT) attachList(ctx context.Context, run *pgtRun, st rdf.Statement, head rdf.BlankNode) error {
	if values := run.table.Values(head.ID); len(values) > 0 {
		run.document(st.Subject).AppendProperty(st.Predicate.LocalName(), values)
	}
	for _, res := range run.table.Resources(head.ID) {
		err := t.edge(ctx, run, st.Predicate.LocalName(), st.Subject, res, st.Predicate.Value, st.Graph)
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *PGT) edge(ctx context.Context, run *pgtRun, collection string, subject, object rdf.Term, predicateIRI, graph string) error {
	from := run.document(subject)
	to := run.document(object)

	err := t.store.EnsureEdgeCollection(ctx, collection,
		[]string{from.Collection}, []string{to.Collection})
	if err != nil {
		return fmt.Errorf("ensure edge collection %s: %w", collection, err)
	}

	edge := pg.NewEdge(
		collection,
		pg.EdgeKey(from.ID(), predicateIRI, to.ID(), graph),
		from.ID(),
		to.ID(),
	).
		WithLabel(rdf.LocalName(predicateIRI)).
		WithProperty(pg.AttrIRI, predicateIRI)
	if graph != "" {
		edge.WithProperty(AttrGraph, graph)
	}
	if err := t.store.UpsertEdge(ctx, edge); err != nil {
		return fmt.Errorf("edge %s: %w", edge.ID(), err)
	}
	run.rep.Edges++
	return nil
}

// materializePredicates writes one Property document per distinct
// predicate of the run.
func (t *PGT) materializePredicates(ctx context.Context, run *pgtRun, data []rdf.Statement) error {
	for _, p := range rdf.Predicates(data) {
		a := run.resolver.ResolvePredicate(p)
		doc := run.lookup(a)
		doc.WithProperty(pg.AttrIRI, p.Value)
		doc.WithProperty(pg.AttrTermKind, pg.TermKindIRI)
	}
	return nil
}

func (t *PGT) flushDocuments(ctx context.Context, run *pgtRun) error {
	ensured := make(map[string]bool)
	for _, id := range run.order {
		doc := run.docs[id]
		if !ensured[doc.Collection] {
			if err := t.store.EnsureDocumentCollection(ctx, doc.Collection); err != nil {
				return fmt.Errorf("ensure collection %s: %w", doc.Collection, err)
			}
			ensured[doc.Collection] = true
		}
		if err := t.store.UpsertDocument(ctx, doc); err != nil {
			return fmt.Errorf("document %s: %w", doc.ID(), err)
		}
		run.rep.Documents++
	}
	return nil
}

// document returns the run's accumulating vertex document for a resource,
// creating it with its origin attributes on first use.
func (run *pgtRun) document(resource rdf.Term) *pg.Document {
	a := run.resolver.Resolve(resource)
	doc := run.lookup(a)
	switch v := resource.(type) {
	case rdf.IRI:
		doc.WithProperty(pg.AttrIRI, v.Value)
		doc.WithProperty(pg.AttrTermKind, pg.TermKindIRI)
	case rdf.BlankNode:
		doc.WithProperty(pg.AttrTermKind, pg.TermKindBlankNode)
	case rdf.Literal:
		// Literal objects of PGT become properties, not documents; a
		// literal arriving here is an edge endpoint, which only happens
		// through list structure with mixed elements. Represent it as an
		// RPT-style literal document.
		return run.lookupDoc(TermDocument(v))
	}
	return doc
}

func (run *pgtRun) lookup(a mapper.Assignment) *pg.Document {
	id := a.Collection + "/" + a.Key
	if doc, ok := run.docs[id]; ok {
		return doc
	}
	doc := pg.NewDocument(a.Collection, a.Key)
	run.docs[id] = doc
	run.order = append(run.order, id)
	return doc
}

func (run *pgtRun) lookupDoc(doc *pg.Document) *pg.Document {
	id := doc.ID()
	if existing, ok := run.docs[id]; ok {
		return existing
	}
	run.docs[id] = doc
	run.order = append(run.order, id)
	return doc
}
