package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FSStore {
	t.Helper()
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestFSStorePutOpenDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, "obj.png", strings.NewReader("payload")))

	exists, err := store.Exists(ctx, "obj.png")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := store.Open(ctx, "obj.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "payload", string(data))

	require.NoError(t, store.Delete(ctx, "obj.png"))

	exists, err = store.Exists(ctx, "obj.png")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Open(ctx, "obj.png")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestFSStoreDeleteMissingIsNoop(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.Delete(context.Background(), "never-existed.png"))
}

func TestFSStoreRejectsPathEscapes(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Open(ctx, "../outside.txt")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	err = store.Put(ctx, "../outside.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrObjectNotFound)

	_, err = store.Open(ctx, "nested/name.txt")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestFSStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, "obj", strings.NewReader("one")))
	require.NoError(t, store.Put(ctx, "obj", strings.NewReader("two")))

	rc, err := store.Open(ctx, "obj")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}
