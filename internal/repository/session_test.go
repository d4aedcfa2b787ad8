package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/quizzzy/internal/model"
	"github.com/dtroode/quizzzy/internal/repository/memory"
)

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		sessions := NewSessionRepository(memory.NewKVStore())

		_, loggedIn, err := sessions.Load(ctx)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.False(t, loggedIn)
	})

	t.Run("save then load", func(t *testing.T) {
		store := memory.NewKVStore()
		sessions := NewSessionRepository(store)

		require.NoError(t, sessions.Save(ctx, model.User{ID: "user-2", FirstName: "Sarah"}))

		user, loggedIn, err := sessions.Load(ctx)
		require.NoError(t, err)
		assert.True(t, loggedIn)
		assert.Equal(t, "Sarah", user.FirstName)

		flag, err := store.Get(ctx, model.KeyIsLoggedIn)
		require.NoError(t, err)
		assert.Equal(t, "true", string(flag))
	})

	t.Run("snapshot without login marker", func(t *testing.T) {
		store := memory.NewKVStore()
		require.NoError(t, store.Set(ctx, model.KeyCurrentUser, []byte(`{"id":"user-1"}`)))
		sessions := NewSessionRepository(store)

		user, loggedIn, err := sessions.Load(ctx)
		require.NoError(t, err)
		assert.False(t, loggedIn)
		assert.Equal(t, "user-1", user.ID)
	})

	t.Run("refresh keeps login marker untouched", func(t *testing.T) {
		store := memory.NewKVStore()
		sessions := NewSessionRepository(store)

		require.NoError(t, sessions.Refresh(ctx, model.User{ID: "user-1", FirstName: "John"}))

		user, loggedIn, err := sessions.Load(ctx)
		require.NoError(t, err)
		assert.False(t, loggedIn)
		assert.Equal(t, "John", user.FirstName)
	})

	t.Run("malformed snapshot", func(t *testing.T) {
		store := memory.NewKVStore()
		require.NoError(t, store.Set(ctx, model.KeyCurrentUser, []byte(`{`)))
		sessions := NewSessionRepository(store)

		_, _, err := sessions.Load(ctx)
		assert.ErrorIs(t, err, model.ErrCorrupt)
	})

	t.Run("clear removes both keys", func(t *testing.T) {
		store := memory.NewKVStore()
		sessions := NewSessionRepository(store)
		require.NoError(t, sessions.Save(ctx, model.User{ID: "user-1"}))

		require.NoError(t, sessions.Clear(ctx))

		_, err := store.Get(ctx, model.KeyCurrentUser)
		assert.ErrorIs(t, err, model.ErrNotFound)
		_, err = store.Get(ctx, model.KeyIsLoggedIn)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		boom := errors.New("backend down")
		sessions := NewSessionRepository(failingStore{err: boom})

		assert.ErrorIs(t, sessions.Save(ctx, model.User{ID: "user-1"}), boom)
		assert.ErrorIs(t, sessions.Clear(ctx), boom)
	})
}

func TestNamespaced(t *testing.T) {
	ctx := context.Background()
	base := memory.NewKVStore()

	assert.Same(t, base, NewNamespaced(base, "").(*memory.KVStore))

	profileA := NewNamespaced(base, "a")
	profileB := NewNamespaced(base, "b")

	require.NoError(t, profileA.Set(ctx, model.KeyIsLoggedIn, []byte("true")))

	_, err := profileB.Get(ctx, model.KeyIsLoggedIn)
	assert.ErrorIs(t, err, model.ErrNotFound)

	raw, err := base.Get(ctx, "a:"+model.KeyIsLoggedIn)
	require.NoError(t, err)
	assert.Equal(t, "true", string(raw))

	require.NoError(t, profileA.Delete(ctx, model.KeyIsLoggedIn))
	_, err = base.Get(ctx, "a:"+model.KeyIsLoggedIn)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
