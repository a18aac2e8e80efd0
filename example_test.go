package arangordf_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"

	arangordf "github.com/ArangoDB-Community/ArangoRDF"
	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/storage"
	"github.com/ArangoDB-Community/ArangoRDF/vocab"
)

// Helper to create an engine without logging.
func newQuietEngine(store storage.Store) (*arangordf.Engine, error) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return arangordf.New(store, arangordf.WithLogger(logger))
}

// ExampleNew demonstrates importing a small statement set with the
// property-graph-preserving transformation and exporting it back.
func ExampleNew() {
	store := storage.NewMemoryStore()
	engine, err := newQuietEngine(store)
	if err != nil {
		log.Fatal(err)
	}

	alice := rdf.IRI{Value: "http://example.com/alice"}
	stmts := []rdf.Statement{
		rdf.NewStatement(alice, rdf.IRI{Value: vocab.RDFType}, rdf.IRI{Value: "http://example.com/Person"}),
		rdf.NewStatement(alice, rdf.IRI{Value: "http://example.com/name"},
			rdf.Literal{Value: "Alice", Datatype: vocab.XSDString}),
	}

	ctx := context.Background()
	report, err := engine.RDFToGraphPGT(ctx, "people", stmts)
	if err != nil {
		log.Fatal(err)
	}

	out, _, err := engine.CollectionsToRDF(ctx, []string{"Person"}, nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("imported %d statements, exported %d\n", report.Statements, len(out))
	// Output: imported 2 statements, exported 1
}
