package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testAdverts = []Advert{
	{ID: 100001, Title: "Go book", Description: "Second edition", Category: "books", Price: 10},
	{ID: 200002, Title: "Hammer", Category: "tools", Price: 25.5},
	{ID: 300003, Title: "Rake", Category: "garden", Price: 0},
}

func TestFileSnapshotStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots", "adverts.json")
	store := NewFileSnapshotStore(zap.NewNop(), path)
	defer store.Close()

	t.Run("missing file is an empty snapshot", func(t *testing.T) {
		adverts, err := store.Load(context.Background())
		assert.NoError(t, err)
		assert.NotNil(t, adverts)
		assert.Empty(t, adverts)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.Save(context.Background(), testAdverts))
		adverts, err := store.Load(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, testAdverts, adverts)
	})

	t.Run("save replaces previous content", func(t *testing.T) {
		require.NoError(t, store.Save(context.Background(), testAdverts[:1]))
		adverts, err := store.Load(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, testAdverts[:1], adverts)

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary files must not be left behind")
	})

	t.Run("empty catalog", func(t *testing.T) {
		require.NoError(t, store.Save(context.Background(), nil))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("corrupted file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(`{"not":"a list"`), 0o600))
		_, err := store.Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, store.Save(ctx, testAdverts), context.Canceled)
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
