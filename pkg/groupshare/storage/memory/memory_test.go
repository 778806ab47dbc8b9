package memory_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupshare/groupshare/pkg/groupshare"
	"github.com/groupshare/groupshare/pkg/groupshare/storage/memory"
)

func TestNamespaceLifecycle(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	exists, err := store.NamespaceExists(ctx, "album-1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.CreateNamespace(ctx, "album-1"))
	// Creating again is a no-op, not an error.
	require.NoError(t, store.CreateNamespace(ctx, "album-1"))

	exists, err = store.NamespaceExists(ctx, "album-1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.RemoveNamespace(ctx, "album-1"))
	require.NoError(t, store.RemoveNamespace(ctx, "album-1"))

	exists, err = store.NamespaceExists(ctx, "album-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestObjectRoundTrip(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.CreateNamespace(ctx, "ns"))

	params := groupshare.PutParams{
		Size:        5,
		ContentType: "text/plain",
		Metadata:    map[string]string{"filename": "hello.txt"},
	}
	require.NoError(t, store.Put(ctx, "ns", "key1", strings.NewReader("hello"), params))

	rc, err := store.Get(ctx, "ns", "key1")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	meta, err := store.Stat(ctx, "ns", "key1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), meta.Size)
	assert.Equal(t, "text/plain", meta.ContentType)
	assert.Equal(t, "hello.txt", meta.Metadata["filename"])

	keys, err := store.List(ctx, "ns")
	require.NoError(t, err)
	assert.Equal(t, []string{"key1"}, keys)

	require.NoError(t, store.Remove(ctx, "ns", "key1"))
	// Removing an absent key is a no-op.
	require.NoError(t, store.Remove(ctx, "ns", "key1"))

	_, err = store.Get(ctx, "ns", "key1")
	assert.ErrorIs(t, err, groupshare.ErrObjectNotFound)
	_, err = store.Stat(ctx, "ns", "key1")
	assert.ErrorIs(t, err, groupshare.ErrObjectNotFound)
}

func TestPutIntoMissingNamespace(t *testing.T) {
	store := memory.New()

	err := store.Put(context.Background(), "absent", "k", strings.NewReader("x"), groupshare.PutParams{})
	assert.Error(t, err)
}
