package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zorpastaman/behaviortree/pkg/adapters/redis"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/ports"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func sample() *domain.TreeDescriptor {
	return &domain.TreeDescriptor{
		Name: "patrol",
		Nodes: []domain.NodeRecord{
			{Type: "sequence", Children: []int{1, 2}},
			{Type: "has_value", Args: []any{"waypoint"}},
			{Type: "wait_frames", Args: []any{float64(3)}},
		},
	}
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunDescriptorStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "patrol", sample()))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "patrol")

	// Fast Forward time in miniredis (for Key Expiration)
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "patrol")
	assert.ErrorIs(t, err, domain.ErrTreeNotFound)

	// The index is pruned against the wall clock, not the miniredis clock.
	time.Sleep(1200 * time.Millisecond)

	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "patrol", sample()))

	assert.True(t, mr.Exists("custom:app:patrol"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	loaded, err := store.Load(ctx, "patrol")
	require.NoError(t, err)
	assert.Equal(t, sample(), loaded)
}

func TestRedisStore_DefaultPrefixAndCorruption(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, mr.Set(redis.DefaultPrefix+"broken", "{not json"))
	_, err := store.Load(ctx, "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTreeNotFound)

	assert.Error(t, store.Save(ctx, "nil", nil))
}
