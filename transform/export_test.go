package transform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArangoDB-Community/ArangoRDF/pg"
	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/storage"
	"github.com/ArangoDB-Community/ArangoRDF/vocab"
)

const ns = DefaultNamespace

// nativeStore builds a store with one native band document carrying an
// array property, the shape the list conversion modes act on.
func nativeStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.EnsureDocumentCollection(ctx, "Band"))
	doc := pg.NewDocument("Band", "beatles").
		WithProperty("members", []any{"john", "paul"})
	require.NoError(t, store.UpsertDocument(ctx, doc))
	return store
}

func TestExportNativeDocumentMintsIRI(t *testing.T) {
	store := nativeStore(t)
	out, rep, err := NewExporter(store, nil, nil, Options{}).All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Documents)

	band := iri(ns + "Band#beatles")
	// Default repeat mode: one statement per element.
	assert.ElementsMatch(t, []rdf.Statement{
		tr(band, ns+"members", str("john")),
		tr(band, ns+"members", str("paul")),
	}, out)
}

func TestExportListStructure(t *testing.T) {
	store := nativeStore(t)
	out, _, err := NewExporter(store, nil, nil, Options{ListConversion: ListStructure}).All(context.Background())
	require.NoError(t, err)

	band := iri(ns + "Band#beatles")
	assert.ElementsMatch(t, []rdf.Statement{
		tr(band, ns+"members", bnode("e1")),
		tr(bnode("e1"), vocab.RDFFirst, str("john")),
		tr(bnode("e1"), vocab.RDFRest, bnode("e2")),
		tr(bnode("e2"), vocab.RDFFirst, str("paul")),
		tr(bnode("e2"), vocab.RDFRest, iri(vocab.RDFNil)),
	}, out)
}

func TestExportContainerStructure(t *testing.T) {
	store := nativeStore(t)
	out, _, err := NewExporter(store, nil, nil, Options{ListConversion: ListContainerStructure}).All(context.Background())
	require.NoError(t, err)

	band := iri(ns + "Band#beatles")
	assert.ElementsMatch(t, []rdf.Statement{
		tr(band, ns+"members", bnode("e1")),
		tr(bnode("e1"), vocab.RDFType, iri(vocab.RDFSeq)),
		tr(bnode("e1"), vocab.RDF+"_1", str("john")),
		tr(bnode("e1"), vocab.RDF+"_2", str("paul")),
	}, out)
}

func TestExportSerializeJSONList(t *testing.T) {
	store := nativeStore(t)
	out, _, err := NewExporter(store, nil, nil, Options{ListConversion: ListSerializeJSON}).All(context.Background())
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, str(`["john","paul"]`), out[0].Object)
}

func TestExportDictModes(t *testing.T) {
	newStore := func(t *testing.T) *storage.MemoryStore {
		store := storage.NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, store.EnsureDocumentCollection(ctx, "Band"))
		doc := pg.NewDocument("Band", "beatles").
			WithProperty("label", map[string]any{"name": "Apple", "year": int64(1968)})
		require.NoError(t, store.UpsertDocument(ctx, doc))
		return store
	}
	band := iri(ns + "Band#beatles")

	t.Run("blank node structure", func(t *testing.T) {
		out, _, err := NewExporter(newStore(t), nil, nil, Options{}).All(context.Background())
		require.NoError(t, err)
		assert.ElementsMatch(t, []rdf.Statement{
			tr(band, ns+"label", bnode("e1")),
			tr(bnode("e1"), ns+"name", str("Apple")),
			tr(bnode("e1"), ns+"year", rdf.Literal{Value: "1968", Datatype: vocab.XSDInteger}),
		}, out)
	})

	t.Run("serialize json", func(t *testing.T) {
		out, _, err := NewExporter(newStore(t), nil, nil, Options{DictConversion: DictSerializeJSON}).All(context.Background())
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, str(`{"name":"Apple","year":1968}`), out[0].Object)
	})
}

func TestExportFidelityStatements(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.EnsureDocumentCollection(ctx, "Band"))
	require.NoError(t, store.UpsertDocument(ctx, pg.NewDocument("Band", "beatles")))

	opts := Options{IncludeCollectionStatements: true, IncludeKeyStatements: true}
	out, _, err := NewExporter(store, nil, nil, opts).All(ctx)
	require.NoError(t, err)

	band := iri(ns + "Band#beatles")
	assert.ElementsMatch(t, []rdf.Statement{
		tr(band, vocab.ADBCollection, str("Band")),
		tr(band, vocab.ADBKey, str("beatles")),
	}, out)
}

func TestExportMetagraphSelectsAttributes(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.EnsureDocumentCollection(ctx, "Band"))
	doc := pg.NewDocument("Band", "beatles").
		WithProperty("name", "The Beatles").
		WithProperty("formed", int64(1960))
	require.NoError(t, store.UpsertDocument(ctx, doc))

	mg := pg.Metagraph{VertexCollections: map[string][]string{"Band": {"name"}}}
	out, _, err := NewExporter(store, nil, nil, Options{}).Metagraph(ctx, mg)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, iri(ns+"name"), out[0].Predicate)
}

func TestExportSkipsEdgeWithUnexportedEndpoint(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.EnsureDocumentCollection(ctx, "Band"))
	require.NoError(t, store.EnsureDocumentCollection(ctx, "Label"))
	require.NoError(t, store.EnsureEdgeCollection(ctx, "signedWith", []string{"Band"}, []string{"Label"}))
	require.NoError(t, store.UpsertDocument(ctx, pg.NewDocument("Band", "beatles")))
	require.NoError(t, store.UpsertDocument(ctx, pg.NewDocument("Label", "apple")))
	require.NoError(t, store.UpsertEdge(ctx, pg.NewEdge("signedWith", "e1", "Band/beatles", "Label/apple")))

	mg := pg.Metagraph{
		VertexCollections: map[string][]string{"Band": nil},
		EdgeCollections:   map[string][]string{"signedWith": nil},
	}
	out, rep, err := NewExporter(store, nil, nil, Options{}).Metagraph(ctx, mg)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 0, rep.Edges)
}

func TestExportReifiesEdgeAttributes(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.EnsureDocumentCollection(ctx, "Band"))
	require.NoError(t, store.EnsureDocumentCollection(ctx, "Label"))
	require.NoError(t, store.EnsureEdgeCollection(ctx, "signedWith", []string{"Band"}, []string{"Label"}))
	require.NoError(t, store.UpsertDocument(ctx, pg.NewDocument("Band", "beatles")))
	require.NoError(t, store.UpsertDocument(ctx, pg.NewDocument("Label", "apple")))
	edge := pg.NewEdge("signedWith", "x1", "Band/beatles", "Label/apple").
		WithLabel("signedWith").
		WithProperty("since", int64(1968))
	require.NoError(t, store.UpsertEdge(ctx, edge))

	band := iri(ns + "Band#beatles")
	label := iri(ns + "Label#apple")
	pred := iri(ns + "signedWith")

	t.Run("dropped without reification", func(t *testing.T) {
		out, _, err := NewExporter(store, nil, nil, Options{}).All(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []rdf.Statement{
			rdf.NewStatement(band, pred, label),
		}, out)
	})

	t.Run("reified", func(t *testing.T) {
		out, _, err := NewExporter(store, nil, nil, Options{ReifyEdgeProperties: true}).All(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []rdf.Statement{
			rdf.NewStatement(band, pred, label),
			tr(bnode("e1"), vocab.RDFType, iri(vocab.RDFStatement)),
			tr(bnode("e1"), vocab.RDFSubject, band),
			tr(bnode("e1"), vocab.RDFPredicate, pred),
			tr(bnode("e1"), vocab.RDFObject, label),
			tr(bnode("e1"), ns+"since", rdf.Literal{Value: "1968", Datatype: vocab.XSDInteger}),
		}, out)
	})
}
