package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillhub/skills-dashboard/internal/testutil"
)

func TestStorage_SetGetRemove(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	ctx := context.Background()

	store := NewStorage(client, StorageOptions{Prefix: "test:client:"})
	ns := store.ForClient("browser-1")

	_, ok, err := ns.Get(ctx, "auth")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ns.Set(ctx, "auth", []byte(`{"access_token":"t"}`)))

	got, ok, err := ns.Get(ctx, "auth")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"access_token":"t"}`, string(got))

	raw, err := client.Get(ctx, "test:client:browser-1:auth").Result()
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	require.NoError(t, ns.Remove(ctx, "auth"))
	_, ok, err = ns.Get(ctx, "auth")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing a missing key is not an error.
	require.NoError(t, ns.Remove(ctx, "auth"))
}

func TestStorage_NamespacesAreIsolated(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	ctx := context.Background()
	store := NewStorage(client, StorageOptions{})

	require.NoError(t, store.ForClient("a").Set(ctx, "userdata", []byte(`{"id":1}`)))

	_, ok, err := store.ForClient("b").Get(ctx, "userdata")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_TTL(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	ctx := context.Background()
	store := NewStorage(client, StorageOptions{Prefix: "ttl:", TTL: time.Minute})

	ns := store.ForClient("c")
	require.NoError(t, ns.Set(ctx, "auth", []byte(`{}`)))

	ttl, err := client.TTL(ctx, "ttl:c:auth").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)

	require.NoError(t, client.Expire(ctx, "ttl:c:auth", 10*time.Second).Err())
	_, ok, err := ns.Get(ctx, "auth")
	require.NoError(t, err)
	require.True(t, ok)

	ttl, err = client.TTL(ctx, "ttl:c:auth").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second, "reads slide the expiry")
}

func TestStorage_EmptyClientID(t *testing.T) {
	store := NewStorage(nil, StorageOptions{})
	ns := store.ForClient("")
	ctx := context.Background()

	_, ok, err := ns.Get(ctx, "auth")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Error(t, ns.Set(ctx, "auth", []byte("{}")))
	assert.NoError(t, ns.Remove(ctx, "auth"))
}
