package taxonomy

import (
	"testing"

	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/vocab"
)

func subClassOf(child, parent string) rdf.Statement {
	return rdf.NewStatement(
		rdf.IRI{Value: child},
		rdf.IRI{Value: vocab.RDFSSubClassOf},
		rdf.IRI{Value: parent},
	)
}

func TestBuild_Depths(t *testing.T) {
	// B ⊑ A, C ⊑ A, D ⊑ C
	idx := Build([]rdf.Statement{
		subClassOf("http://ex.com#B", "http://ex.com#A"),
		subClassOf("http://ex.com#C", "http://ex.com#A"),
		subClassOf("http://ex.com#D", "http://ex.com#C"),
	})

	tests := []struct {
		class string
		depth int
	}{
		{"http://ex.com#A", 0},
		{"http://ex.com#B", 1},
		{"http://ex.com#C", 1},
		{"http://ex.com#D", 2},
		{"http://ex.com#Unknown", 0},
	}
	for _, tt := range tests {
		if got := idx.Depth(tt.class); got != tt.depth {
			t.Errorf("Depth(%s) = %d, want %d", tt.class, got, tt.depth)
		}
	}
}

func TestBuild_Diamond(t *testing.T) {
	// D ⊑ B, D ⊑ C, B ⊑ A, C ⊑ X ⊑ A: depth uses the maximum path.
	idx := Build([]rdf.Statement{
		subClassOf("http://ex.com#D", "http://ex.com#B"),
		subClassOf("http://ex.com#D", "http://ex.com#C"),
		subClassOf("http://ex.com#B", "http://ex.com#A"),
		subClassOf("http://ex.com#C", "http://ex.com#X"),
		subClassOf("http://ex.com#X", "http://ex.com#A"),
	})

	if got := idx.Depth("http://ex.com#D"); got != 3 {
		t.Errorf("Depth(D) = %d, want 3 (max over both paths)", got)
	}
}

func TestBuild_SelfLoopIsRoot(t *testing.T) {
	idx := Build([]rdf.Statement{
		subClassOf("http://ex.com#A", "http://ex.com#A"),
		subClassOf("http://ex.com#B", "http://ex.com#A"),
	})

	if got := idx.Depth("http://ex.com#A"); got != 0 {
		t.Errorf("Depth(self-loop) = %d, want 0", got)
	}
	if got := idx.Depth("http://ex.com#B"); got != 1 {
		t.Errorf("Depth(B) = %d, want 1 (self-loop parent counts as root)", got)
	}
}

func TestBuild_TransitiveCycle(t *testing.T) {
	// A ⊑ B ⊑ A: both are cyclic roots; a class below them sits at depth 1.
	idx := Build([]rdf.Statement{
		subClassOf("http://ex.com#A", "http://ex.com#B"),
		subClassOf("http://ex.com#B", "http://ex.com#A"),
		subClassOf("http://ex.com#D", "http://ex.com#A"),
	})

	if got := idx.Depth("http://ex.com#A"); got != 0 {
		t.Errorf("Depth(A) = %d, want 0", got)
	}
	if got := idx.Depth("http://ex.com#B"); got != 0 {
		t.Errorf("Depth(B) = %d, want 0", got)
	}
	if got := idx.Depth("http://ex.com#D"); got != 1 {
		t.Errorf("Depth(D) = %d, want 1", got)
	}
}

func TestBuild_IgnoresNonClassTerms(t *testing.T) {
	idx := Build([]rdf.Statement{
		rdf.NewStatement(
			rdf.BlankNode{ID: "b0"},
			rdf.IRI{Value: vocab.RDFSSubClassOf},
			rdf.IRI{Value: "http://ex.com#A"},
		),
		rdf.NewStatement(
			rdf.IRI{Value: "http://ex.com#B"},
			rdf.IRI{Value: vocab.RDFSSubClassOf},
			rdf.Literal{Value: "not a class"},
		),
	})

	if idx.Contains("http://ex.com#B") {
		t.Error("literal-object subClassOf should not register the child")
	}
	if len(idx.Classes()) != 0 {
		t.Errorf("Classes() = %v, want empty", idx.Classes())
	}
}

func TestSuperclasses_Sorted(t *testing.T) {
	idx := Build([]rdf.Statement{
		subClassOf("http://ex.com#D", "http://ex.com#Z"),
		subClassOf("http://ex.com#D", "http://ex.com#A"),
	})

	got := idx.Superclasses("http://ex.com#D")
	if len(got) != 2 || got[0] != "http://ex.com#A" || got[1] != "http://ex.com#Z" {
		t.Errorf("Superclasses(D) = %v, want sorted [A Z]", got)
	}
}
