package arangordf

import (
	"context"
	"log/slog"

	"github.com/ArangoDB-Community/ArangoRDF/pg"
	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/storage"
	"github.com/ArangoDB-Community/ArangoRDF/transform"
)

// Engine is the entry point of the transformation library. It binds a
// property-graph store to the RDF transformation passes and carries the
// shared configuration applied to each run.
//
// An Engine is safe for concurrent use; every transformation call builds
// its own per-run state.
type Engine struct {
	store storage.Store
	cfg   engineConfig
}

// New creates an Engine writing to and reading from store.
func New(store storage.Store, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, &Error{Op: "New", Kind: KindConfiguration, Err: ErrInvalidConfig}
	}
	cfg := engineConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{store: store, cfg: cfg}, nil
}

// RDFToGraphRPT imports statements with the RDF-topology-preserving
// transformation: one vertex per distinct term, one edge per statement.
func (e *Engine) RDFToGraphRPT(ctx context.Context, graph string, stmts []rdf.Statement) (*transform.Report, error) {
	rep, err := transform.NewRPT(e.store, e.cfg.logger, e.cfg.tracer).Transform(ctx, graph, stmts)
	if err != nil {
		return nil, &Error{Op: "Engine.RDFToGraphRPT", Kind: KindTransform, Err: err}
	}
	return rep, nil
}

// RDFToGraphPGT imports statements with the property-graph-preserving
// transformation: literals become vertex properties and resources become
// edges, with vertices placed by the collection mapper.
func (e *Engine) RDFToGraphPGT(ctx context.Context, graph string, stmts []rdf.Statement) (*transform.Report, error) {
	pgt := transform.NewPGT(e.store, e.cfg.mapper, e.cfg.logger, e.cfg.tracer, e.cfg.opts)
	rep, err := pgt.Transform(ctx, graph, stmts)
	if err != nil {
		return nil, &Error{Op: "Engine.RDFToGraphPGT", Kind: KindTransform, Err: err}
	}
	return rep, nil
}

// GraphToRDF reconstructs RDF statements from every collection in the
// store.
func (e *Engine) GraphToRDF(ctx context.Context) ([]rdf.Statement, *transform.Report, error) {
	stmts, rep, err := e.exporter().All(ctx)
	if err != nil {
		return nil, nil, &Error{Op: "Engine.GraphToRDF", Kind: KindTransform, Err: err}
	}
	return stmts, rep, nil
}

// CollectionsToRDF reconstructs RDF statements from the named vertex and
// edge collections.
func (e *Engine) CollectionsToRDF(ctx context.Context, vertex, edge []string) ([]rdf.Statement, *transform.Report, error) {
	stmts, rep, err := e.exporter().Collections(ctx, vertex, edge)
	if err != nil {
		return nil, nil, &Error{Op: "Engine.CollectionsToRDF", Kind: KindTransform, Err: err}
	}
	return stmts, rep, nil
}

// MetagraphToRDF reconstructs RDF statements from the collections and
// attributes the metagraph selects.
func (e *Engine) MetagraphToRDF(ctx context.Context, mg pg.Metagraph) ([]rdf.Statement, *transform.Report, error) {
	stmts, rep, err := e.exporter().Metagraph(ctx, mg)
	if err != nil {
		return nil, nil, &Error{Op: "Engine.MetagraphToRDF", Kind: KindTransform, Err: err}
	}
	return stmts, rep, nil
}

func (e *Engine) exporter() *transform.Exporter {
	return transform.NewExporter(e.store, e.cfg.logger, e.cfg.tracer, e.cfg.opts)
}
