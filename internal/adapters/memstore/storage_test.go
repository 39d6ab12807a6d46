package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	ns := s.ForClient("browser-1")

	require.NoError(t, ns.Set(ctx, "auth", []byte(`{"access_token":"t"}`)))
	got, ok, err := ns.Get(ctx, "auth")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"access_token":"t"}`, string(got))

	// Returned slices are copies.
	got[0] = 'X'
	again, _, _ := ns.Get(ctx, "auth")
	assert.Equal(t, byte('{'), again[0])

	require.NoError(t, ns.Remove(ctx, "auth"))
	_, ok, err = ns.Get(ctx, "auth")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, ns.Remove(ctx, "missing"))
}

func TestStorage_Isolation(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	require.NoError(t, s.ForClient("a").Set(ctx, "userdata", []byte("1")))

	_, ok, err := s.ForClient("b").Get(ctx, "userdata")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Error(t, s.ForClient("").Set(ctx, "k", nil))
}

func TestStorage_TTLAndPurge(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New(time.Minute)
	s.now = func() time.Time { return now }

	ns := s.ForClient("c")
	require.NoError(t, ns.Set(ctx, "auth", []byte("{}")))
	require.NoError(t, ns.Set(ctx, "userdata", []byte("{}")))

	now = now.Add(50 * time.Second)
	_, ok, _ := ns.Get(ctx, "auth") // slides expiry of "auth" only
	require.True(t, ok)

	now = now.Add(20 * time.Second)
	n, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, s.Len())

	_, ok, _ = ns.Get(ctx, "userdata")
	assert.False(t, ok)
	_, ok, _ = ns.Get(ctx, "auth")
	assert.True(t, ok)
}

func TestStorage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ns := New(0).ForClient("x")

	_, _, err := ns.Get(ctx, "auth")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, ns.Set(ctx, "auth", nil), context.Canceled)
	assert.ErrorIs(t, ns.Remove(ctx, "auth"), context.Canceled)
	_, err = New(0).PurgeExpired(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
