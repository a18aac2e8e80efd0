package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ArangoDB-Community/ArangoRDF/pg"
)

// MemoryStore is an in-memory Store for tests and small graphs. It is
// safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]map[string]*pg.Document
	edges map[string]map[string]*pg.Edge
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:  make(map[string]map[string]*pg.Document),
		edges: make(map[string]map[string]*pg.Edge),
	}
}

// EnsureDocumentCollection implements Store.
func (s *MemoryStore) EnsureDocumentCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.edges[name]; exists {
		return fmt.Errorf("collection %q already exists as an edge collection", name)
	}
	if _, exists := s.docs[name]; !exists {
		s.docs[name] = make(map[string]*pg.Document)
	}
	return nil
}

// EnsureEdgeCollection implements Store. The in-memory store does not
// enforce endpoint constraints; the from/to collections are accepted for
// interface compatibility.
func (s *MemoryStore) EnsureEdgeCollection(_ context.Context, name string, _, _ []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[name]; exists {
		return fmt.Errorf("collection %q already exists as a document collection", name)
	}
	if _, exists := s.edges[name]; !exists {
		s.edges[name] = make(map[string]*pg.Edge)
	}
	return nil
}

// UpsertDocument implements Store. An existing key keeps its record;
// duplicate creation is a skip, not a conflict.
func (s *MemoryStore) UpsertDocument(_ context.Context, doc *pg.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.docs[doc.Collection]
	if !ok {
		col = make(map[string]*pg.Document)
		s.docs[doc.Collection] = col
	}
	if existing, ok := col[doc.Key]; ok {
		// Merge new attributes into the surviving record so repeated
		// property statements accumulate across upserts of one subject.
		for k, v := range doc.Properties {
			existing.Properties[k] = v
		}
		return nil
	}
	col[doc.Key] = doc
	return nil
}

// UpsertEdge implements Store.
func (s *MemoryStore) UpsertEdge(_ context.Context, edge *pg.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.edges[edge.Collection]
	if !ok {
		col = make(map[string]*pg.Edge)
		s.edges[edge.Collection] = col
	}
	if _, ok := col[edge.Key]; !ok {
		col[edge.Key] = edge
	}
	return nil
}

// Documents implements Store; results come back in key order.
func (s *MemoryStore) Documents(_ context.Context, collection string) ([]*pg.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.docs[collection]
	if !ok {
		return nil, fmt.Errorf("documents of %q: %w", collection, ErrCollectionNotFound)
	}
	keys := make([]string, 0, len(col))
	for k := range col {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*pg.Document, 0, len(col))
	for _, k := range keys {
		out = append(out, col[k])
	}
	return out, nil
}

// Edges implements Store; results come back in key order.
func (s *MemoryStore) Edges(_ context.Context, collection string) ([]*pg.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.edges[collection]
	if !ok {
		return nil, fmt.Errorf("edges of %q: %w", collection, ErrCollectionNotFound)
	}
	keys := make([]string, 0, len(col))
	for k := range col {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*pg.Edge, 0, len(col))
	for _, k := range keys {
		out = append(out, col[k])
	}
	return out, nil
}

// VertexCollections implements Store.
func (s *MemoryStore) VertexCollections(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.docs))
	for name := range s.docs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// EdgeCollections implements Store.
func (s *MemoryStore) EdgeCollections(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.edges))
	for name := range s.edges {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
