// Package mapper resolves each RDF resource to the property-graph
// collection and document key that will hold it. The resolution rules,
// in order of precedence:
//
//  1. An explicit adb:collection override statement wins outright.
//  2. A single effective type maps to that class's local name.
//  3. Among multiple effective types appearing in the subclass taxonomy,
//     the deepest class wins; ties break by ascending lexicographic order
//     of the full class IRI.
//  4. Multiple effective types with no taxonomy relation break ties by
//     lexicographic order alone.
//  5. With no type information at all, the fallback collection is used.
//
// The tie-break in rules 3 and 4 follows a single-inheritance style
// precedence heuristic applied to a multiple-inheritance taxonomy; its
// exact ordering is part of the engine's contract and must not change.
package mapper

import (
	"sort"

	"github.com/ArangoDB-Community/ArangoRDF/rdf"
	"github.com/ArangoDB-Community/ArangoRDF/taxonomy"
)

// DefaultFallbackCollection receives resources with no type information.
const DefaultFallbackCollection = "UnknownResource"

// PropertyCollection receives predicate documents when contextualization
// materializes them. Predicates never go through the type-based rules.
const PropertyCollection = "Property"

// Mapper selects a collection name for a resource given its effective
// type set and the subclass taxonomy. Implementations must be
// deterministic: equal inputs must produce equal outputs. Callers may
// substitute their own implementation for the default rule set.
type Mapper interface {
	Resolve(resource rdf.Term, types []string, tax *taxonomy.Index) string
}

// Default is the standard rule-set implementation of Mapper (rules 2-5;
// overrides are handled by the Resolver before the Mapper is consulted).
type Default struct {
	// Fallback is the collection for untyped resources. Empty means
	// DefaultFallbackCollection.
	Fallback string
}

// Resolve implements the type-based collection-mapping rules.
func (d Default) Resolve(resource rdf.Term, types []string, tax *taxonomy.Index) string {
	switch len(types) {
	case 0:
		if d.Fallback != "" {
			return d.Fallback
		}
		return DefaultFallbackCollection
	case 1:
		return rdf.LocalName(types[0])
	}

	candidates := append([]string(nil), types...)
	sort.Strings(candidates)

	inTaxonomy := false
	if tax != nil {
		for _, c := range candidates {
			if tax.Contains(c) {
				inTaxonomy = true
				break
			}
		}
	}
	if !inTaxonomy {
		return rdf.LocalName(candidates[0])
	}

	// Deepest class wins; iterating in sorted order and replacing only on
	// a strictly greater depth realizes the lexicographic tie-break.
	best := ""
	bestDepth := -1
	for _, c := range candidates {
		if depth := tax.Depth(c); depth > bestDepth {
			bestDepth = depth
			best = c
		}
	}
	return rdf.LocalName(best)
}
