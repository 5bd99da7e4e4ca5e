package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateAndFind(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	sess := &Session{ID: "s1", Actor: "admin", DeviceDisplayName: "Chrome on macOS", CreatedAtUnix: 1756368000}
	require.NoError(t, store.Create(ctx, sess))

	got, err := store.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	sess := &Session{ID: "s1", Actor: "admin"}
	require.NoError(t, store.Create(ctx, sess))

	// Mutating the caller's struct after Create must not affect the store.
	sess.Actor = "mutated"

	got, err := store.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Actor)

	// Nor should mutating a read result.
	got.Actor = "mutated-again"
	again, err := store.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "admin", again.Actor)
}

func TestMemoryStoreFindMissing(t *testing.T) {
	store := NewMemory()

	_, err := store.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &Session{ID: "s1", Actor: "admin"}))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.FindByID(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Second delete reports the session as gone.
	assert.ErrorIs(t, store.Delete(ctx, "s1"), ErrNotFound)
}
