package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	_, ok, err := store.Get(ctx, KeyArtNetBroadcastAddress)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, KeyArtNetBroadcastAddress, "10.0.0.5"))
	value, ok, err := store.Get(ctx, KeyArtNetBroadcastAddress)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.5", value)
}

func TestSetOverwritesExistingValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, KeyArtNetBroadcastAddress, "10.0.0.5"))
	require.NoError(t, store.Set(ctx, KeyArtNetBroadcastAddress, "192.168.1.255"))

	value, ok, err := store.Get(ctx, KeyArtNetBroadcastAddress)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "192.168.1.255", value)
}

func TestValuePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, KeyArtNetBroadcastAddress, "172.16.0.1"))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, KeyArtNetBroadcastAddress)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "172.16.0.1", value)
}
