package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/league-skinset-finder/internal/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestKey(t *testing.T) {
	a := cache.Key("fp1", []byte(`{"players":[]}`))

	assert.Equal(t, a, cache.Key("fp1", []byte(`{"players":[]}`)), "deterministic")
	assert.NotEqual(t, a, cache.Key("fp2", []byte(`{"players":[]}`)), "scoped to the catalog")
	assert.NotEqual(t, a, cache.Key("fp1", []byte(`{"players":[{}]}`)))
}

func TestNopCache(t *testing.T) {
	var c cache.ResultCache = cache.NopCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("failed to get redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() {
		client.Close()
	})
	return client
}

func TestRedisCache(t *testing.T) {
	client := newTestRedis(t)
	c := cache.NewRedisCacheWithClient(client, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte(`{"count":1}`)))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"count":1}`), got)

	ttl, err := client.TTL(ctx, "skinset:resolve:k").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
