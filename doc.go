// Package arangordf transforms RDF graphs into ArangoDB property graphs
// and back.
//
// Two import strategies are provided:
//
//   - RPT (RDF-topology preserving): every distinct term becomes a vertex
//     and every statement becomes an edge, keeping the RDF graph shape
//     intact.
//   - PGT (property-graph preserving): statements with literal objects
//     become vertex properties and statements with resource objects
//     become edges, producing the shape a property-graph user expects.
//
// The reverse transformation reconstructs RDF statements from any set of
// collections, whether they were written by RPT, by PGT, or natively by
// an application.
//
// # Collection mapping
//
// PGT places each resource in a collection chosen by a deterministic
// rule chain: an explicit adb:collection override, then the local name
// of a single rdf:type, then the deepest class in the rdfs:subClassOf
// taxonomy, then the lexicographically first type, and finally a
// fallback collection. Assignments are memoized per run and can be
// replayed across runs.
//
// # Getting started
//
//	store, err := arango.Connect(ctx, arango.Config{
//		Endpoints: []string{"http://localhost:8529"},
//		Database:  "rdf",
//	}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	engine, err := arangordf.New(store, arangordf.WithContextualize())
//	if err != nil {
//		log.Fatal(err)
//	}
//	report, err := engine.RDFToGraphPGT(ctx, "library", statements)
//
// The in-memory store in the storage package serves tests and small
// graphs without a running deployment.
package arangordf
