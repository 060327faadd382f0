package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_SaveLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	store, err := openSessionStore(path)
	require.NoError(t, err)

	exp := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, store.Save(session{Server: "http://vault", Token: "tok", ExpiresAt: &exp}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://vault", got.Server)
	assert.Equal(t, "tok", got.Token)
	require.NotNil(t, got.ExpiresAt)
	assert.True(t, exp.Equal(*got.ExpiresAt))
}

func TestSessionStore_NoExpiry(t *testing.T) {
	t.Parallel()

	store, _ := openSessionStore(filepath.Join(t.TempDir(), "session.yaml"))
	require.NoError(t, store.Save(session{Server: "http://vault", Token: "tok"}))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, got.ExpiresAt)
}

func TestSessionStore_Missing(t *testing.T) {
	t.Parallel()

	store, _ := openSessionStore(filepath.Join(t.TempDir(), "session.yaml"))
	_, err := store.Load()
	assert.True(t, errors.Is(err, errNoSession))
}

func TestSessionStore_Expired(t *testing.T) {
	t.Parallel()

	store, _ := openSessionStore(filepath.Join(t.TempDir(), "session.yaml"))
	past := time.Now().Add(-time.Minute)
	require.NoError(t, store.Save(session{Server: "http://vault", Token: "tok", ExpiresAt: &past}))

	_, err := store.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestSessionStore_Clear(t *testing.T) {
	t.Parallel()

	store, _ := openSessionStore(filepath.Join(t.TempDir(), "session.yaml"))
	require.NoError(t, store.Save(session{Server: "http://vault", Token: "tok"}))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	_, err := store.Load()
	assert.True(t, errors.Is(err, errNoSession))
}
