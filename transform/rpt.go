package transform

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/ArangoDB-Community/ArangoRDF/pg"
	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/storage"
	"github.com/ArangoDB-Community/ArangoRDF/vocab"
)

// Fixed collections of the topology-preserving transformation: vertices
// bucket by term kind, and every statement becomes one edge.
const (
	CollectionIRI       = "IRI"
	CollectionBNode     = "BNode"
	CollectionLiteral   = "Literal"
	CollectionStatement = "Statement"
)

// AttrGraph stores the named-graph context of a statement edge.
const AttrGraph = "_graph"

// RPT is the RDF-topology-preserving transformer: one vertex per distinct
// term, one edge per statement. Reified statements are ordinary
// statements whose subject is the reification blank node; they produce
// edges exactly like any other triple, keeping the transform uniformly
// one statement → one edge.
//
// An RPT value is single-use per call but holds no cross-run state;
// concurrent runs should each construct their own.
type RPT struct {
	store  storage.Store
	logger *slog.Logger
	inst   *instruments
}

// NewRPT creates an RPT transformer writing to store. A nil logger falls
// back to slog.Default; a nil tracer falls back to the global provider.
func NewRPT(store storage.Store, logger *slog.Logger, tracer trace.Tracer) *RPT {
	if logger == nil {
		logger = slog.Default()
	}
	return &RPT{store: store, logger: logger, inst: newInstruments(tracer)}
}

// Transform imports stmts into the property graph. Quoted-triple terms
// are flattened into reification statements first; statements that cannot
// be represented are reported in the returned Report and skipped.
func (t *RPT) Transform(ctx context.Context, graph string, stmts []rdf.Statement) (*Report, error) {
	ctx, span := t.inst.start(ctx, "rpt.transform", graph)
	defer span.End()

	rep := newReport(graph)

	f := newFlattener(t.logger)
	flat := f.flatten(stmts)
	rep.Unsupported = f.unsupported

	if err := t.ensureCollections(ctx); err != nil {
		return nil, err
	}

	for _, st := range flat {
		if err := t.statement(ctx, graph, st, rep); err != nil {
			return nil, err
		}
	}

	t.inst.record(ctx, graph, rep)
	t.logger.Info("rpt transform complete",
		"graph", graph,
		"run", rep.RunID,
		"statements", rep.Statements,
		"documents", rep.Documents,
		"edges", rep.Edges,
	)
	return rep, nil
}

func (t *RPT) ensureCollections(ctx context.Context) error {
	for _, name := range []string{CollectionIRI, CollectionBNode, CollectionLiteral} {
		if err := t.store.EnsureDocumentCollection(ctx, name); err != nil {
			return fmt.Errorf("ensure collection %s: %w", name, err)
		}
	}
	err := t.store.EnsureEdgeCollection(ctx, CollectionStatement,
		[]string{CollectionIRI, CollectionBNode},
		[]string{CollectionIRI, CollectionBNode, CollectionLiteral},
	)
	if err != nil {
		return fmt.Errorf("ensure collection %s: %w", CollectionStatement, err)
	}
	return nil
}

func (t *RPT) statement(ctx context.Context, graph string, st rdf.Statement, rep *Report) error {
	from, err := t.upsertTerm(ctx, st.Subject, rep)
	if err != nil {
		return fmt.Errorf("subject of %s: %w", st, err)
	}
	to, err := t.upsertTerm(ctx, st.Object, rep)
	if err != nil {
		return fmt.Errorf("object of %s: %w", st, err)
	}

	edge := pg.NewEdge(
		CollectionStatement,
		pg.EdgeKey(from, st.Predicate.Value, to, st.Graph),
		from,
		to,
	).
		WithLabel(st.Predicate.LocalName()).
		WithProperty(pg.AttrIRI, st.Predicate.Value)
	if st.Graph != "" {
		edge.WithProperty(AttrGraph, st.Graph)
	}
	if err := t.store.UpsertEdge(ctx, edge); err != nil {
		return fmt.Errorf("edge for %s: %w", st, err)
	}
	rep.Statements++
	rep.Edges++
	return nil
}

// upsertTerm writes the vertex document for a term and returns its
// handle. The document records the term kind so the reverse transform can
// restore the exact term.
func (t *RPT) upsertTerm(ctx context.Context, term rdf.Term, rep *Report) (string, error) {
	doc := TermDocument(term)
	if doc == nil {
		return "", fmt.Errorf("term %s has no RPT representation", term)
	}
	if err := t.store.UpsertDocument(ctx, doc); err != nil {
		return "", err
	}
	rep.Documents++
	return doc.ID(), nil
}

// TermDocument builds the RPT vertex document for a base term: IRIs,
// blank nodes, and literals land in their kind's collection under a
// deterministic key. Quoted-triple terms have no document; they are
// flattened before this point.
func TermDocument(term rdf.Term) *pg.Document {
	switch v := term.(type) {
	case rdf.IRI:
		return pg.NewDocument(CollectionIRI, pg.IRIKey(v.Value)).
			WithProperty(pg.AttrIRI, v.Value).
			WithProperty(pg.AttrTermKind, pg.TermKindIRI)
	case rdf.BlankNode:
		return pg.NewDocument(CollectionBNode, pg.BlankNodeKey(v.ID)).
			WithProperty(pg.AttrTermKind, pg.TermKindBlankNode)
	case rdf.Literal:
		doc := pg.NewDocument(CollectionLiteral, pg.LiteralKey(v)).
			WithProperty(pg.AttrValue, v.Value).
			WithProperty(pg.AttrTermKind, pg.TermKindLiteral)
		datatype := v.Datatype
		if datatype == "" && v.Lang == "" {
			// Plain literals coerce to xsd:string, the only type allowed
			// to be omitted in RDF.
			datatype = vocab.XSDString
		}
		if datatype != "" {
			doc.WithProperty(pg.AttrDatatype, datatype)
		}
		if v.Lang != "" {
			doc.WithProperty(pg.AttrLang, v.Lang)
		}
		return doc
	default:
		return nil
	}
}
