package replay

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArangoDB-Community/ArangoRDF/mapper"
)

// setupRedisStore creates a miniredis instance and a store connected to it.
func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(RedisOptions{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func snapshot() map[string]mapper.Assignment {
	return map[string]mapper.Assignment{
		"http://example.com/alice": {Collection: "Person", Key: "a1"},
		"http://example.com/bob":   {Collection: "Person", Key: "b1"},
	}
}

func TestMemoryStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Save(ctx, "g", snapshot()))
	loaded, err := store.Load(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, snapshot(), loaded)

	// Saves merge over earlier assignments.
	require.NoError(t, store.Save(ctx, "g", map[string]mapper.Assignment{
		"http://example.com/carol": {Collection: "Person", Key: "c1"},
	}))
	loaded, err = store.Load(ctx, "g")
	require.NoError(t, err)
	assert.Len(t, loaded, 3)

	require.NoError(t, store.Clear(ctx, "g"))
	loaded, err = store.Load(ctx, "g")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestMemoryStoreIsolatesGraphs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Save(ctx, "g1", snapshot()))
	loaded, err := store.Load(ctx, "g2")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRedisStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := setupRedisStore(t)

	require.NoError(t, store.Save(ctx, "g", snapshot()))
	loaded, err := store.Load(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, snapshot(), loaded)

	require.NoError(t, store.Clear(ctx, "g"))
	loaded, err = store.Load(ctx, "g")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRedisStoreEmptySnapshotIsNoop(t *testing.T) {
	ctx := context.Background()
	store := setupRedisStore(t)

	require.NoError(t, store.Save(ctx, "g", nil))
	loaded, err := store.Load(ctx, "g")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestNewRedisStoreBadURL(t *testing.T) {
	_, err := NewRedisStore(RedisOptions{URL: "not a url"})
	assert.Error(t, err)
}
