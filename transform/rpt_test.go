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

func iri(v string) rdf.IRI           { return rdf.IRI{Value: v} }
func bnode(id string) rdf.BlankNode  { return rdf.BlankNode{ID: id} }
func str(v string) rdf.Literal       { return rdf.Literal{Value: v, Datatype: vocab.XSDString} }
func tr(s rdf.Term, p string, o rdf.Term) rdf.Statement {
	return rdf.NewStatement(s, iri(p), o)
}

func render(stmts []rdf.Statement) []string {
	out := make([]string, len(stmts))
	for i, st := range stmts {
		out[i] = st.String()
	}
	return out
}

func TestRPTRoundTrip(t *testing.T) {
	alice := iri("http://example.com/alice")
	bob := iri("http://example.com/bob")
	quad := tr(alice, "http://example.com/knows", bob)
	quad.Graph = "http://example.com/social"

	stmts := []rdf.Statement{
		tr(alice, vocab.RDFType, iri("http://example.com/Person")),
		tr(alice, "http://example.com/name", str("Alice")),
		tr(alice, "http://example.com/age", rdf.Literal{Value: "30", Datatype: vocab.XSDInteger}),
		tr(bob, "http://example.com/nick", rdf.Literal{Value: "bobby", Lang: "en"}),
		tr(bnode("addr1"), "http://example.com/city", str("Berlin")),
		quad,
	}

	store := storage.NewMemoryStore()
	ctx := context.Background()

	rep, err := NewRPT(store, nil, nil).Transform(ctx, "g", stmts)
	require.NoError(t, err)
	assert.Equal(t, len(stmts), rep.Statements)
	assert.Equal(t, len(stmts), rep.Edges)
	assert.Empty(t, rep.Unsupported)

	out, _, err := NewExporter(store, nil, nil, Options{}).All(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, render(stmts), render(out))
}

func TestRPTPlainLiteralCoercesToString(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	stmts := []rdf.Statement{
		tr(iri("http://example.com/a"), "http://example.com/p", rdf.Literal{Value: "plain"}),
	}
	_, err := NewRPT(store, nil, nil).Transform(ctx, "g", stmts)
	require.NoError(t, err)

	docs, err := store.Documents(ctx, CollectionLiteral)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "plain", docs[0].Properties[pg.AttrValue])
	assert.Equal(t, vocab.XSDString, docs[0].Properties[pg.AttrDatatype])
}

func TestRPTQuotedTripleFlattensToReification(t *testing.T) {
	alice := iri("http://example.com/alice")
	bob := iri("http://example.com/bob")
	carol := iri("http://example.com/carol")
	quoted := rdf.TripleTerm{S: alice, P: iri("http://example.com/knows"), O: bob}

	store := storage.NewMemoryStore()
	ctx := context.Background()

	rep, err := NewRPT(store, nil, nil).Transform(ctx, "g", []rdf.Statement{
		tr(carol, "http://example.com/says", quoted),
	})
	require.NoError(t, err)
	// The quoting statement plus four reification statements.
	assert.Equal(t, 5, rep.Statements)

	out, _, err := NewExporter(store, nil, nil, Options{}).All(ctx)
	require.NoError(t, err)
	rendered := render(out)
	assert.Contains(t, rendered, tr(carol, "http://example.com/says", bnode("stmt1")).String())
	assert.Contains(t, rendered, tr(bnode("stmt1"), vocab.RDFType, iri(vocab.RDFStatement)).String())
	assert.Contains(t, rendered, tr(bnode("stmt1"), vocab.RDFSubject, alice).String())
	assert.Contains(t, rendered, tr(bnode("stmt1"), vocab.RDFPredicate, iri("http://example.com/knows")).String())
	assert.Contains(t, rendered, tr(bnode("stmt1"), vocab.RDFObject, bob).String())
}

func TestRPTUnrepresentableQuotedTripleReported(t *testing.T) {
	quoted := rdf.TripleTerm{S: str("nope"), P: iri("http://example.com/p"), O: iri("http://example.com/o")}

	store := storage.NewMemoryStore()
	rep, err := NewRPT(store, nil, nil).Transform(context.Background(), "g", []rdf.Statement{
		tr(iri("http://example.com/s"), "http://example.com/says", quoted),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Statements)
	require.Len(t, rep.Unsupported, 1)
}

func TestRPTDuplicateStatementsUpsertOnce(t *testing.T) {
	st := tr(iri("http://example.com/a"), "http://example.com/p", iri("http://example.com/b"))

	store := storage.NewMemoryStore()
	ctx := context.Background()
	_, err := NewRPT(store, nil, nil).Transform(ctx, "g", []rdf.Statement{st, st})
	require.NoError(t, err)

	edges, err := store.Edges(ctx, CollectionStatement)
	require.NoError(t, err)
	assert.Len(t, edges, 1)

	docs, err := store.Documents(ctx, CollectionIRI)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}
