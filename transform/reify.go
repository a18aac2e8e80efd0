package transform

import (
	"fmt"
	"log/slog"

	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/vocab"
)

// flattener rewrites RDF-star quoted-triple terms into standard
// reification: each distinct quoted triple becomes a blank node carrying
// rdf:subject / rdf:predicate / rdf:object statements plus an rdf:type
// rdf:Statement marker, and the quoting statement references that blank
// node. Quoted triples that cannot be flattened (a literal in subject
// position) are reported, never silently dropped.
type flattener struct {
	logger *slog.Logger

	minted      map[string]rdf.BlankNode
	extra       []rdf.Statement
	unsupported []string
	next        int
}

func newFlattener(logger *slog.Logger) *flattener {
	return &flattener{
		logger: logger,
		minted: make(map[string]rdf.BlankNode),
	}
}

// flatten returns the statement set with every quoted-triple term
// replaced, appending the minted reification statements. Statements that
// cannot be represented are excluded and recorded in unsupported.
func (f *flattener) flatten(stmts []rdf.Statement) []rdf.Statement {
	out := make([]rdf.Statement, 0, len(stmts))
	for _, st := range stmts {
		if !st.Valid() {
			f.report(st, "malformed statement")
			continue
		}
		subject, ok := f.term(st.Subject)
		if !ok {
			f.report(st, "unrepresentable quoted triple in subject position")
			continue
		}
		object, ok := f.term(st.Object)
		if !ok {
			f.report(st, "unrepresentable quoted triple in object position")
			continue
		}
		st.Subject = subject
		st.Object = object
		out = append(out, st)
	}
	return append(out, f.extra...)
}

// term resolves a possibly-quoted term to a base term, minting a
// reification blank node for quoted triples. ok is false when the quoted
// triple cannot be represented.
func (f *flattener) term(t rdf.Term) (rdf.Term, bool) {
	quoted, isQuoted := t.(rdf.TripleTerm)
	if !isQuoted {
		return t, true
	}
	rendered := quoted.String()
	if b, ok := f.minted[rendered]; ok {
		return b, true
	}

	// Reification requires a resource subject; RDF has no way to state a
	// triple about a literal.
	if quoted.S == nil || quoted.O == nil || !resourceOrQuoted(quoted.S) {
		return nil, false
	}
	subject, ok := f.term(quoted.S)
	if !ok {
		return nil, false
	}
	object, ok := f.term(quoted.O)
	if !ok {
		return nil, false
	}

	f.next++
	b := rdf.BlankNode{ID: fmt.Sprintf("stmt%d", f.next)}
	f.minted[rendered] = b
	f.extra = append(f.extra,
		rdf.NewStatement(b, rdf.IRI{Value: vocab.RDFType}, rdf.IRI{Value: vocab.RDFStatement}),
		rdf.NewStatement(b, rdf.IRI{Value: vocab.RDFSubject}, subject),
		rdf.NewStatement(b, rdf.IRI{Value: vocab.RDFPredicate}, quoted.P),
		rdf.NewStatement(b, rdf.IRI{Value: vocab.RDFObject}, object),
	)
	return b, true
}

func resourceOrQuoted(t rdf.Term) bool {
	return rdf.IsResource(t) || t.Kind() == rdf.KindTriple
}

func (f *flattener) report(st rdf.Statement, reason string) {
	f.unsupported = append(f.unsupported, st.String())
	f.logger.Warn("skipping unsupported statement",
		"statement", st.String(),
		"reason", reason,
	)
}
