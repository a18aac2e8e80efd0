// Package replay persists collection assignments between transformation
// runs so that re-imports of overlapping data place each resource in the
// collection it already lives in. A run's assignment snapshot is saved
// under a named graph and seeded into the next run's options.
package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ArangoDB-Community/ArangoRDF/mapper"
)

// Store persists assignment snapshots keyed by graph name.
type Store interface {
	// Save stores the snapshot for a graph, merging it over any
	// previously saved assignments.
	Save(ctx context.Context, graph string, snapshot map[string]mapper.Assignment) error

	// Load returns the saved snapshot for a graph. A graph with no saved
	// assignments yields an empty map, not an error.
	Load(ctx context.Context, graph string) (map[string]mapper.Assignment, error)

	// Clear removes the saved snapshot for a graph.
	Clear(ctx context.Context, graph string) error
}

// MemoryStore is an in-memory Store for tests and single-process use.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]map[string]mapper.Assignment
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]map[string]mapper.Assignment)}
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, graph string, snapshot map[string]mapper.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved, ok := s.snapshots[graph]
	if !ok {
		saved = make(map[string]mapper.Assignment, len(snapshot))
		s.snapshots[graph] = saved
	}
	for term, a := range snapshot {
		saved[term] = a
	}
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, graph string) (map[string]mapper.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]mapper.Assignment, len(s.snapshots[graph]))
	for term, a := range s.snapshots[graph] {
		out[term] = a
	}
	return out, nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(_ context.Context, graph string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, graph)
	return nil
}

var _ Store = (*MemoryStore)(nil)

// RedisOptions configures the Redis-backed store.
type RedisOptions struct {
	// URL is the Redis connection string (e.g. "redis://localhost:6379").
	URL string

	// KeyPrefix namespaces the hash keys. Default "arangordf:assignments".
	KeyPrefix string

	// ConnectTimeout bounds connection establishment. Default 5s.
	ConnectTimeout time.Duration
}

// RedisStore persists snapshots in a Redis hash per graph, sharing
// assignments across processes importing into the same deployment.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "arangordf:assignments"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	redisOpts.DialTimeout = opts.ConnectTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisStore{client: client, prefix: opts.KeyPrefix}, nil
}

// NewRedisStoreFromClient wraps an existing client, used by tests and
// callers pooling connections.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "arangordf:assignments"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(graph string) string {
	return s.prefix + ":" + graph
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, graph string, snapshot map[string]mapper.Assignment) error {
	if len(snapshot) == 0 {
		return nil
	}
	fields := make(map[string]string, len(snapshot))
	for term, a := range snapshot {
		data, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("failed to marshal assignment for %s: %w", term, err)
		}
		fields[term] = string(data)
	}
	if err := s.client.HSet(ctx, s.key(graph), fields).Err(); err != nil {
		return fmt.Errorf("failed to save assignments for %s: %w", graph, err)
	}
	return nil
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, graph string) (map[string]mapper.Assignment, error) {
	fields, err := s.client.HGetAll(ctx, s.key(graph)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments for %s: %w", graph, err)
	}
	out := make(map[string]mapper.Assignment, len(fields))
	for term, data := range fields {
		var a mapper.Assignment
		if err := json.Unmarshal([]byte(data), &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal assignment for %s: %w", term, err)
		}
		out[term] = a
	}
	return out, nil
}

// Clear implements Store.
func (s *RedisStore) Clear(ctx context.Context, graph string) error {
	if err := s.client.Del(ctx, s.key(graph)).Err(); err != nil {
		return fmt.Errorf("failed to clear assignments for %s: %w", graph, err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
