package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()
	userID := uuid.New()

	sid, err := store.Create(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, sid)

	got, err := store.Get(ctx, sid)
	require.NoError(t, err)
	require.Equal(t, userID, got)

	require.NoError(t, store.Destroy(ctx, sid))
	_, err = store.Get(ctx, sid)
	require.ErrorIs(t, err, ErrNotFound)

	// Destroying an unknown session is a no-op.
	require.NoError(t, store.Destroy(ctx, "does-not-exist"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	sid, err := store.Create(ctx, uuid.New())
	require.NoError(t, err)

	_, err = store.Get(ctx, sid)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = store.Get(ctx, sid)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreUnknownSession(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}
