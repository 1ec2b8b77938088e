package main

import (
	"context"
	"net"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startRedisDockerContainer(t *testing.T) (string, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("Failed to start Dockertest: %+v", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		t.Skipf("Could not connect to Docker: %+v", err)
	}

	resource, err := pool.Run("redis", "7.0.10-alpine", nil)
	if err != nil {
		t.Fatalf("Failed to start redis: %+v", err)
	}

	// build address the container is listening on
	addr := net.JoinHostPort("localhost", resource.GetPort("6379/tcp"))

	// ensure to wait for the container to be ready
	err = pool.Retry(func() error {
		client := redis.NewClient(&redis.Options{Addr: addr})
		defer client.Close()
		return client.Ping(context.Background()).Err()
	})
	if err != nil {
		t.Fatalf("Failed to ping Redis: %+v", err)
	}

	destroyFunc := func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Failed to purge resource: %+v", err)
		}
	}

	return addr, destroyFunc
}

func TestRedisSnapshotStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	addr, destroyFunc := startRedisDockerContainer(t)
	defer destroyFunc()
	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	client, err := GetRedisClient(&Config{Redis: RedisConfig{Host: host, Port: port}})
	require.NoError(t, err)
	rs := NewRedisSnapshotStore(zap.NewNop(), client, "test.adverts")
	defer rs.Close()

	t.Run("empty hash", func(t *testing.T) {
		adverts, err := rs.Load(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, adverts)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, rs.Save(context.Background(), testAdverts))
		adverts, err := rs.Load(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, testAdverts, adverts)
	})

	t.Run("save replaces previous content", func(t *testing.T) {
		require.NoError(t, rs.Save(context.Background(), testAdverts[2:]))
		adverts, err := rs.Load(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, testAdverts[2:], adverts)
	})

	t.Run("empty catalog clears the hash", func(t *testing.T) {
		require.NoError(t, rs.Save(context.Background(), []Advert{}))
		n, err := client.Exists(context.Background(), "test.adverts").Result()
		assert.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})
}
