package transform

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName identifies this package's tracer and meter.
const instrumentationName = "github.com/ArangoDB-Community/ArangoRDF/transform"

// instruments bundles the OpenTelemetry signals the transformers emit:
// one span per pass plus counters for statements, documents, and edges.
type instruments struct {
	tracer     trace.Tracer
	statements metric.Int64Counter
	documents  metric.Int64Counter
	edges      metric.Int64Counter
}

// newInstruments builds the instrument set. A nil tracer falls back to
// the global provider, which is a no-op unless the caller installed one.
func newInstruments(tracer trace.Tracer) *instruments {
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	meter := otel.Meter(instrumentationName)
	statements, _ := meter.Int64Counter("arangordf.statements",
		metric.WithDescription("RDF statements consumed or produced by transformation passes"))
	documents, _ := meter.Int64Counter("arangordf.documents",
		metric.WithDescription("Property-graph vertex documents written or read"))
	edges, _ := meter.Int64Counter("arangordf.edges",
		metric.WithDescription("Property-graph edge documents written or read"))
	return &instruments{
		tracer:     tracer,
		statements: statements,
		documents:  documents,
		edges:      edges,
	}
}

func (in *instruments) start(ctx context.Context, pass, graph string) (context.Context, trace.Span) {
	return in.tracer.Start(ctx, pass, trace.WithAttributes(
		attribute.String("arangordf.graph", graph),
	))
}

func (in *instruments) record(ctx context.Context, graph string, rep *Report) {
	attrs := metric.WithAttributes(attribute.String("arangordf.graph", graph))
	in.statements.Add(ctx, int64(rep.Statements), attrs)
	in.documents.Add(ctx, int64(rep.Documents), attrs)
	in.edges.Add(ctx, int64(rep.Edges), attrs)
}
