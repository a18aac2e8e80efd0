// Package taxonomy builds the rdfs:subClassOf hierarchy of a statement set
// and answers depth queries over it. The index is derived state owned by a
// single transformation run.
package taxonomy

import (
	"sort"

	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/vocab"
)

// Index maps each class IRI to its declared superclasses and memoizes
// computed depths. A root class (no declared superclass, or a class that
// participates in a subClassOf cycle) has depth 0; any other class has
// depth 1 + the maximum depth among its declared superclasses. Classes the
// index has never seen have depth 0 and no superclasses.
//
// Index is not safe for concurrent use; each run builds its own.
type Index struct {
	parents map[string][]string
	depths  map[string]int
	cyclic  map[string]bool
}

// Build scans stmts for subClassOf statements whose subject and object are
// both resources, recording a child→parent edge for each. Self-loops and
// multi-parent diamonds are permitted.
func Build(stmts []rdf.Statement) *Index {
	x := &Index{
		parents: make(map[string][]string),
		depths:  make(map[string]int),
		cyclic:  make(map[string]bool),
	}
	for _, st := range stmts {
		if st.Predicate.Value != vocab.RDFSSubClassOf {
			continue
		}
		child, ok := st.Subject.(rdf.IRI)
		if !ok {
			continue
		}
		parent, ok := st.Object.(rdf.IRI)
		if !ok {
			continue
		}
		x.addEdge(child.Value, parent.Value)
	}
	return x
}

func (x *Index) addEdge(child, parent string) {
	for _, p := range x.parents[child] {
		if p == parent {
			return
		}
	}
	x.parents[child] = append(x.parents[child], parent)
	if _, ok := x.parents[parent]; !ok {
		x.parents[parent] = nil
	}
}

// Contains reports whether class was seen as a child or parent of a
// subClassOf statement.
func (x *Index) Contains(class string) bool {
	_, ok := x.parents[class]
	return ok
}

// Superclasses returns the declared direct superclasses of class, sorted.
func (x *Index) Superclasses(class string) []string {
	out := append([]string(nil), x.parents[class]...)
	sort.Strings(out)
	return out
}

// Classes returns every class in the index, sorted.
func (x *Index) Classes() []string {
	out := make([]string, 0, len(x.parents))
	for c := range x.parents {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Depth returns the depth of class. Unknown classes have depth 0. Classes
// on a subClassOf cycle (directly or transitively) are depth-0 roots;
// classes above a cyclic root still count it as a depth-0 superclass.
func (x *Index) Depth(class string) int {
	return x.resolve(class, nil)
}

// resolve walks superclass edges depth-first. stack holds the classes on
// the current walk; closing an edge back into the stack marks every class
// from that point upward as cyclic, which pins their depth to 0.
func (x *Index) resolve(class string, stack []string) int {
	if d, ok := x.depths[class]; ok {
		return d
	}
	for i, s := range stack {
		if s == class {
			for _, c := range stack[i:] {
				x.cyclic[c] = true
			}
			return 0
		}
	}
	stack = append(stack, class)

	best := -1
	for _, p := range x.parents[class] {
		if p == class {
			x.cyclic[class] = true
			continue
		}
		if d := x.resolve(p, stack); d > best {
			best = d
		}
	}

	d := 0
	if best >= 0 && !x.cyclic[class] {
		d = best + 1
	}
	x.depths[class] = d
	return d
}
