package mapper

import (
	"testing"

	"github.com/ArangoDB-Community/ArangoRDF/inference"
	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/taxonomy"
	"github.com/ArangoDB-Community/ArangoRDF/vocab"
)

const ns = "http://ex.com#"

func iri(local string) rdf.IRI { return rdf.IRI{Value: ns + local} }

func typed(resource rdf.Term, classes ...string) []rdf.Statement {
	out := make([]rdf.Statement, 0, len(classes))
	for _, c := range classes {
		out = append(out, rdf.NewStatement(resource, rdf.IRI{Value: vocab.RDFType}, iri(c)))
	}
	return out
}

func subClassOf(child, parent string) rdf.Statement {
	return rdf.NewStatement(iri(child), rdf.IRI{Value: vocab.RDFSSubClassOf}, iri(parent))
}

func newResolver(stmts []rdf.Statement) *Resolver {
	tax := taxonomy.Build(stmts)
	scope := inference.BuildScope(stmts)
	types := inference.BuildTypes(stmts, scope, false)
	return NewResolver(stmts, types, tax, Default{})
}

func TestResolve_SingleType(t *testing.T) {
	r := iri("bob")
	res := newResolver(typed(r, "Person"))

	if got := res.Resolve(r).Collection; got != "Person" {
		t.Errorf("Resolve = %q, want Person", got)
	}
}

func TestResolve_DeepestClassWins(t *testing.T) {
	// B ⊑ A, C ⊑ A, D ⊑ C; resource typed both B (depth 1) and D (depth 2).
	r := iri("bob")
	stmts := append(typed(r, "B", "D"),
		subClassOf("B", "A"),
		subClassOf("C", "A"),
		subClassOf("D", "C"),
	)

	if got := newResolver(stmts).Resolve(r).Collection; got != "D" {
		t.Errorf("Resolve = %q, want D (depth 2 beats depth 1)", got)
	}
}

func TestResolve_DepthTieBreaksLexicographically(t *testing.T) {
	r := iri("bob")
	stmts := append(typed(r, "Zebra", "Mule"),
		subClassOf("Zebra", "Animal"),
		subClassOf("Mule", "Animal"),
	)

	// Both candidates sit at depth 1; the lexicographically first full IRI
	// (…#Mule < …#Zebra) wins.
	if got := newResolver(stmts).Resolve(r).Collection; got != "Mule" {
		t.Errorf("Resolve = %q, want Mule", got)
	}
}

func TestResolve_NoTaxonomyRelation(t *testing.T) {
	r := iri("bob")
	stmts := typed(r, "G", "E", "F")

	if got := newResolver(stmts).Resolve(r).Collection; got != "E" {
		t.Errorf("Resolve = %q, want E (lexicographically first)", got)
	}
}

func TestResolve_Fallback(t *testing.T) {
	r := iri("mystery")
	res := newResolver(nil)

	if got := res.Resolve(r).Collection; got != DefaultFallbackCollection {
		t.Errorf("Resolve = %q, want %q", got, DefaultFallbackCollection)
	}

	custom := NewResolver(nil, nil, nil, Default{Fallback: "Orphan"})
	if got := custom.Resolve(r).Collection; got != "Orphan" {
		t.Errorf("Resolve with custom fallback = %q, want Orphan", got)
	}
}

func TestResolve_OverrideBeatsTypes(t *testing.T) {
	r := iri("bob")
	stmts := append(typed(r, "Person"),
		rdf.NewStatement(r, rdf.IRI{Value: vocab.ADBCollection}, rdf.Literal{Value: "Z"}),
	)

	if got := newResolver(stmts).Resolve(r).Collection; got != "Z" {
		t.Errorf("Resolve = %q, want override Z", got)
	}
}

func TestResolve_KeyOverride(t *testing.T) {
	r := iri("bob")
	stmts := append(typed(r, "Person"),
		rdf.NewStatement(r, rdf.IRI{Value: vocab.ADBKey}, rdf.Literal{Value: "bob-1"}),
	)

	if got := newResolver(stmts).Resolve(r).Key; got != "bob-1" {
		t.Errorf("Resolve key = %q, want bob-1", got)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r := iri("bob")
	res := newResolver(typed(r, "Person"))

	first := res.Resolve(r)
	second := res.Resolve(r)
	if first != second {
		t.Errorf("re-resolution changed the assignment: %v vs %v", first, second)
	}
}

func TestResolvePredicate_FixedCollection(t *testing.T) {
	res := newResolver(nil)

	a := res.ResolvePredicate(iri("knows"))
	if a.Collection != PropertyCollection {
		t.Errorf("predicate collection = %q, want %q", a.Collection, PropertyCollection)
	}
}

func TestResolve_SeededAssignmentWins(t *testing.T) {
	r := iri("bob")
	res := newResolver(typed(r, "Person"))
	res.Seed(map[string]Assignment{
		r.String(): {Collection: "Pinned", Key: "k1"},
	})

	if got := res.Resolve(r); got.Collection != "Pinned" || got.Key != "k1" {
		t.Errorf("Resolve = %v, want seeded assignment", got)
	}
}

func TestIsOverrideStatement(t *testing.T) {
	r := iri("bob")
	override := rdf.NewStatement(r, rdf.IRI{Value: vocab.ADBCollection}, rdf.Literal{Value: "Z"})
	data := rdf.NewStatement(r, iri("name"), rdf.Literal{Value: "Bob"})
	resourceObject := rdf.NewStatement(r, rdf.IRI{Value: vocab.ADBCollection}, iri("Z"))

	if !IsOverrideStatement(override) {
		t.Error("literal adb:collection statement should be an override")
	}
	if IsOverrideStatement(data) {
		t.Error("ordinary data statement misclassified as override")
	}
	if IsOverrideStatement(resourceObject) {
		t.Error("non-literal adb:collection object is not an override")
	}
}
