// Package storage defines the property-graph storage collaborator the
// transformation engine writes to and reads from. The engine never issues
// transport-level calls itself; implementations own persistence,
// batching, and transactions.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArangoDB-Community/ArangoRDF/pg"
)

// ErrConflict indicates a write-write or duplicate-key conflict surfaced
// by the backing store. The engine's contract is to report which record
// produced the conflict so the caller can decide to skip, overwrite, or
// abort; implementations whose write path tolerates duplicates by
// skipping never return it.
var ErrConflict = errors.New("storage conflict")

// ErrCollectionNotFound indicates a read from a collection that does not
// exist.
var ErrCollectionNotFound = errors.New("collection not found")

// ConflictError wraps ErrConflict with the record that collided.
type ConflictError struct {
	Collection string
	Key        string
	Err        error
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict in collection %q on key %q: %v", e.Collection, e.Key, e.Err)
}

// Unwrap returns ErrConflict so callers can match with errors.Is.
func (e *ConflictError) Unwrap() error { return ErrConflict }

// Store is the property-graph storage collaborator. All methods are
// synchronous; batching and cancellation checkpoints are the
// implementation's concern. Implementations must be safe for use by
// concurrent transformation runs, and their write path must tolerate
// concurrent document creation by skipping duplicates rather than
// failing.
type Store interface {
	// EnsureDocumentCollection creates the vertex collection if it does
	// not exist.
	EnsureDocumentCollection(ctx context.Context, name string) error

	// EnsureEdgeCollection creates the edge collection if it does not
	// exist and extends its endpoint constraints with the given vertex
	// collections.
	EnsureEdgeCollection(ctx context.Context, name string, from, to []string) error

	// UpsertDocument inserts the document, keeping the existing record on
	// a duplicate key.
	UpsertDocument(ctx context.Context, doc *pg.Document) error

	// UpsertEdge inserts the edge, keeping the existing record on a
	// duplicate key.
	UpsertEdge(ctx context.Context, edge *pg.Edge) error

	// Documents returns every document in a vertex collection.
	Documents(ctx context.Context, collection string) ([]*pg.Document, error)

	// Edges returns every edge in an edge collection.
	Edges(ctx context.Context, collection string) ([]*pg.Edge, error)

	// VertexCollections returns the names of all vertex collections.
	VertexCollections(ctx context.Context) ([]string, error)

	// EdgeCollections returns the names of all edge collections.
	EdgeCollections(ctx context.Context) ([]string, error)
}
