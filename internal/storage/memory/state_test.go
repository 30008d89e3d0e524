package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanbook/internal/storage/redis"
)

func TestStateStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore(time.Hour)

	state, err := store.GetUserDialogState(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &redis.UserState{}, state)

	in := &redis.UserState{
		Step:    "frequency",
		Booking: &redis.Booking{Frequency: "weekly", AddOns: []string{"walls"}},
	}
	require.NoError(t, store.SetUserDialogState(ctx, 1, in))

	// mutating the caller's copy must not leak into the store
	in.Booking.AddOns[0] = "changed"

	out, err := store.GetUserDialogState(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "frequency", out.Step)
	assert.Equal(t, []string{"walls"}, out.Booking.AddOns)

	require.NoError(t, store.DropUserDialogState(ctx, 1))
	out, err = store.GetUserDialogState(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, out.Step)
}

func TestStateStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	store := NewStateStore(time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.SetUserDialogState(ctx, 7, &redis.UserState{Step: "space_details"}))

	now = now.Add(59 * time.Second)
	state, err := store.GetUserDialogState(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "space_details", state.Step)

	now = now.Add(time.Second)
	state, err = store.GetUserDialogState(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, state.Step)
}

func TestStateStore_CheckRateLimit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	store := NewStateStore(time.Hour)
	store.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		exceeded, err := store.CheckRateLimit(ctx, 1, "update", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, exceeded, "call %d", i+1)
	}

	exceeded, err := store.CheckRateLimit(ctx, 1, "update", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, exceeded)

	// counters are per user and per action
	exceeded, err = store.CheckRateLimit(ctx, 2, "update", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, exceeded)
	exceeded, err = store.CheckRateLimit(ctx, 1, "ratecard", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, exceeded)

	now = now.Add(time.Minute)
	exceeded, err = store.CheckRateLimit(ctx, 1, "update", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, exceeded, "the bucket refills over the window")
}

func TestStateStore_SweepsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	store := NewStateStore(time.Minute)
	store.now = func() time.Time { return now }

	for chatID := int64(1); chatID <= 10000; chatID++ {
		require.NoError(t, store.SetUserDialogState(ctx, chatID, &redis.UserState{Step: "frequency"}))
		_, err := store.CheckRateLimit(ctx, chatID, "update", 30, time.Minute)
		require.NoError(t, err)
	}
	require.Len(t, store.states, 10000)
	require.Len(t, store.limiters, 10000)

	// still live: nothing is dropped
	now = now.Add(30 * time.Second)
	require.NoError(t, store.SetUserDialogState(ctx, 20000, &redis.UserState{}))
	assert.Len(t, store.states, 10001)

	now = now.Add(48 * time.Hour)
	require.NoError(t, store.SetUserDialogState(ctx, 20001, &redis.UserState{Step: "space_details"}))
	assert.Len(t, store.states, 1)
	assert.Empty(t, store.limiters)

	_, err := store.CheckRateLimit(ctx, 7, "update", 30, time.Minute)
	require.NoError(t, err)
	assert.Len(t, store.limiters, 1)

	state, err := store.GetUserDialogState(ctx, 20001)
	require.NoError(t, err)
	assert.Equal(t, "space_details", state.Step)
}

func TestStateStore_CheckRateLimitNonPositiveLimit(t *testing.T) {
	store := NewStateStore(time.Hour)

	exceeded, err := store.CheckRateLimit(context.Background(), 1, "update", 0, time.Minute)
	require.NoError(t, err)
	assert.True(t, exceeded)
}
