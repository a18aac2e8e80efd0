// Package arango implements the storage collaborator on top of an
// ArangoDB deployment using the official Go driver. Collections are
// created lazily, writes skip duplicate keys, and edge collections are
// registered in a named graph so their endpoint constraints accumulate
// across transformation runs.
package arango

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	driver "github.com/arangodb/go-driver"
	driverhttp "github.com/arangodb/go-driver/http"

	"github.com/ArangoDB-Community/ArangoRDF/pg"
	"github.com/ArangoDB-Community/ArangoRDF/storage"
)

// Config describes an ArangoDB connection.
type Config struct {
	// Endpoints lists the coordinator URLs.
	Endpoints []string `yaml:"endpoints"`

	// Database is created on first use when it does not exist.
	Database string `yaml:"database"`

	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// Graph names the named graph edge collections register with. Empty
	// disables graph management; collections are still created.
	Graph string `yaml:"graph"`

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// Store is an ArangoDB-backed storage.Store.
type Store struct {
	db     driver.Database
	logger *slog.Logger

	graph string

	mu          sync.Mutex
	constraints map[string]driver.VertexConstraints
}

var _ storage.Store = (*Store)(nil)

// Connect opens the configured database, creating it when absent, and
// returns a Store bound to it.
func Connect(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("arango: no endpoints configured")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("arango: no database configured")
	}

	conn, err := driverhttp.NewConnection(driverhttp.ConnectionConfig{
		Endpoints: cfg.Endpoints,
		TLSConfig: &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify},
	})
	if err != nil {
		return nil, fmt.Errorf("arango: connection: %w", err)
	}
	client, err := driver.NewClient(driver.ClientConfig{
		Connection:     conn,
		Authentication: driver.BasicAuthentication(cfg.Username, cfg.Password),
	})
	if err != nil {
		return nil, fmt.Errorf("arango: client: %w", err)
	}

	exists, err := client.DatabaseExists(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("arango: database check: %w", err)
	}
	var db driver.Database
	if exists {
		db, err = client.Database(ctx, cfg.Database)
	} else {
		db, err = client.CreateDatabase(ctx, cfg.Database, nil)
		if driver.IsConflict(err) {
			// Lost a creation race; open the winner's database.
			db, err = client.Database(ctx, cfg.Database)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("arango: database %s: %w", cfg.Database, err)
	}

	logger.Info("connected to arangodb",
		"endpoints", strings.Join(cfg.Endpoints, ","),
		"database", cfg.Database,
	)
	return &Store{
		db:          db,
		logger:      logger,
		graph:       cfg.Graph,
		constraints: make(map[string]driver.VertexConstraints),
	}, nil
}

// NewStore wraps an already opened database. Used by callers that manage
// their own connection lifecycle.
func NewStore(db driver.Database, graph string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:          db,
		logger:      logger,
		graph:       graph,
		constraints: make(map[string]driver.VertexConstraints),
	}
}

// EnsureDocumentCollection implements storage.Store.
func (s *Store) EnsureDocumentCollection(ctx context.Context, name string) error {
	exists, err := s.db.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("arango: collection check %s: %w", name, err)
	}
	if exists {
		return nil
	}
	_, err = s.db.CreateCollection(ctx, name, nil)
	if err != nil && !driver.IsConflict(err) {
		return fmt.Errorf("arango: create collection %s: %w", name, err)
	}
	return nil
}

// EnsureEdgeCollection implements storage.Store. Repeated calls extend
// the endpoint constraints of the named graph's edge definition.
func (s *Store) EnsureEdgeCollection(ctx context.Context, name string, from, to []string) error {
	exists, err := s.db.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("arango: collection check %s: %w", name, err)
	}
	if !exists {
		_, err = s.db.CreateCollection(ctx, name, &driver.CreateCollectionOptions{
			Type: driver.CollectionTypeEdge,
		})
		if err != nil && !driver.IsConflict(err) {
			return fmt.Errorf("arango: create edge collection %s: %w", name, err)
		}
	}
	if s.graph == "" {
		return nil
	}
	return s.register(ctx, name, from, to)
}

// register records the edge definition in the named graph, merging the
// endpoint constraints with those of earlier calls.
func (s *Store) register(ctx context.Context, name string, from, to []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.constraints[name]
	changed := false
	merged.From, changed = merge(merged.From, from, changed)
	merged.To, changed = merge(merged.To, to, changed)
	if !changed {
		return nil
	}
	s.constraints[name] = merged

	g, err := s.ensureGraph(ctx)
	if err != nil {
		return err
	}
	collExists, err := g.EdgeCollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("arango: edge definition check %s: %w", name, err)
	}
	if !collExists {
		_, err = g.CreateEdgeCollection(ctx, name, merged)
		if driver.IsConflict(err) {
			err = g.SetVertexConstraints(ctx, name, merged)
		}
	} else {
		err = g.SetVertexConstraints(ctx, name, merged)
	}
	if err != nil {
		return fmt.Errorf("arango: edge definition %s: %w", name, err)
	}
	return nil
}

func (s *Store) ensureGraph(ctx context.Context) (driver.Graph, error) {
	exists, err := s.db.GraphExists(ctx, s.graph)
	if err != nil {
		return nil, fmt.Errorf("arango: graph check %s: %w", s.graph, err)
	}
	if exists {
		return s.db.Graph(ctx, s.graph)
	}
	g, err := s.db.CreateGraphV2(ctx, s.graph, nil)
	if driver.IsConflict(err) {
		return s.db.Graph(ctx, s.graph)
	}
	if err != nil {
		return nil, fmt.Errorf("arango: create graph %s: %w", s.graph, err)
	}
	return g, nil
}

// UpsertDocument implements storage.Store. A duplicate key keeps the
// existing record.
func (s *Store) UpsertDocument(ctx context.Context, doc *pg.Document) error {
	col, err := s.db.Collection(ctx, doc.Collection)
	if err != nil {
		return fmt.Errorf("arango: collection %s: %w", doc.Collection, err)
	}
	_, err = col.CreateDocument(ctx, documentRecord(doc))
	if err != nil && !driver.IsConflict(err) {
		return fmt.Errorf("arango: insert %s: %w", doc.ID(), err)
	}
	return nil
}

// UpsertEdge implements storage.Store. A duplicate key keeps the
// existing record.
func (s *Store) UpsertEdge(ctx context.Context, edge *pg.Edge) error {
	col, err := s.db.Collection(ctx, edge.Collection)
	if err != nil {
		return fmt.Errorf("arango: collection %s: %w", edge.Collection, err)
	}
	_, err = col.CreateDocument(ctx, edgeRecord(edge))
	if err != nil && !driver.IsConflict(err) {
		return fmt.Errorf("arango: insert %s: %w", edge.ID(), err)
	}
	return nil
}

// Documents implements storage.Store.
func (s *Store) Documents(ctx context.Context, collection string) ([]*pg.Document, error) {
	records, err := s.query(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]*pg.Document, 0, len(records))
	for _, rec := range records {
		out = append(out, parseDocument(collection, rec))
	}
	return out, nil
}

// Edges implements storage.Store.
func (s *Store) Edges(ctx context.Context, collection string) ([]*pg.Edge, error) {
	records, err := s.query(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]*pg.Edge, 0, len(records))
	for _, rec := range records {
		out = append(out, parseEdge(collection, rec))
	}
	return out, nil
}

func (s *Store) query(ctx context.Context, collection string) ([]map[string]any, error) {
	exists, err := s.db.CollectionExists(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("arango: collection check %s: %w", collection, err)
	}
	if !exists {
		return nil, fmt.Errorf("arango: %s: %w", collection, storage.ErrCollectionNotFound)
	}
	cursor, err := s.db.Query(ctx, "FOR r IN @@collection SORT r._key RETURN r",
		map[string]any{"@collection": collection})
	if err != nil {
		return nil, fmt.Errorf("arango: query %s: %w", collection, err)
	}
	defer cursor.Close()

	var out []map[string]any
	for cursor.HasMore() {
		var rec map[string]any
		if _, err := cursor.ReadDocument(ctx, &rec); err != nil {
			return nil, fmt.Errorf("arango: read %s: %w", collection, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// VertexCollections implements storage.Store.
func (s *Store) VertexCollections(ctx context.Context) ([]string, error) {
	return s.collections(ctx, driver.CollectionTypeDocument)
}

// EdgeCollections implements storage.Store.
func (s *Store) EdgeCollections(ctx context.Context) ([]string, error) {
	return s.collections(ctx, driver.CollectionTypeEdge)
}

func (s *Store) collections(ctx context.Context, kind driver.CollectionType) ([]string, error) {
	cols, err := s.db.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("arango: list collections: %w", err)
	}
	var out []string
	for _, col := range cols {
		if strings.HasPrefix(col.Name(), "_") {
			continue
		}
		props, err := col.Properties(ctx)
		if err != nil {
			return nil, fmt.Errorf("arango: properties of %s: %w", col.Name(), err)
		}
		if props.Type == kind {
			out = append(out, col.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// merge appends the members of add missing from set, keeping set sorted.
func merge(set, add []string, changed bool) ([]string, bool) {
	for _, a := range add {
		found := false
		for _, s := range set {
			if s == a {
				found = true
				break
			}
		}
		if !found {
			set = append(set, a)
			changed = true
		}
	}
	sort.Strings(set)
	return set, changed
}

// documentRecord flattens a document into the wire shape: properties at
// the top level next to the key.
func documentRecord(doc *pg.Document) map[string]any {
	rec := make(map[string]any, len(doc.Properties)+1)
	for k, v := range doc.Properties {
		rec[k] = v
	}
	rec["_key"] = doc.Key
	return rec
}

func edgeRecord(edge *pg.Edge) map[string]any {
	rec := make(map[string]any, len(edge.Properties)+4)
	for k, v := range edge.Properties {
		rec[k] = v
	}
	rec["_key"] = edge.Key
	rec["_from"] = edge.From
	rec["_to"] = edge.To
	if edge.Label != "" {
		rec["label"] = edge.Label
	}
	return rec
}

// metaFields are the wire-level fields excluded from parsed properties.
var metaFields = map[string]bool{
	"_key":  true,
	"_id":   true,
	"_rev":  true,
	"_from": true,
	"_to":   true,
}

func parseDocument(collection string, rec map[string]any) *pg.Document {
	doc := pg.NewDocument(collection, stringField(rec, "_key"))
	for k, v := range rec {
		if metaFields[k] {
			continue
		}
		doc.Properties[k] = v
	}
	return doc
}

func parseEdge(collection string, rec map[string]any) *pg.Edge {
	edge := pg.NewEdge(collection,
		stringField(rec, "_key"),
		stringField(rec, "_from"),
		stringField(rec, "_to"),
	).WithLabel(stringField(rec, "label"))
	for k, v := range rec {
		if metaFields[k] || k == "label" {
			continue
		}
		edge.Properties[k] = v
	}
	return edge
}

func stringField(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}
