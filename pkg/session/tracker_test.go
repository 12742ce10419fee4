package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTrackerIdleTimeout(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	newTracker := func(sinceActivity time.Duration) (*Tracker, *MemoryStore) {
		store := NewMemoryStore()
		clock := base
		tracker := NewTracker(store, 30*time.Minute).
			WithClock(func() time.Time { return clock })

		tracker.Login("token-1", `{"id":"user-1"}`)
		clock = base.Add(sinceActivity)
		return tracker, store
	}

	t.Run("active under the window", func(t *testing.T) {
		tracker, store := newTracker(29 * time.Minute)

		decision := tracker.Check()
		require.True(t, decision.Allow)
		require.Empty(t, decision.RedirectTo)
		require.Equal(t, "token-1", store.Get(KeyToken))
	})

	t.Run("expired past the window clears state and redirects", func(t *testing.T) {
		tracker, store := newTracker(31 * time.Minute)

		require.Equal(t, IdleExpired, tracker.State())
		decision := tracker.Check()
		require.False(t, decision.Allow)
		require.Equal(t, LoginPath, decision.RedirectTo)
		require.Empty(t, store.Get(KeyToken))
		require.Empty(t, store.Get(KeyUser))
		require.Empty(t, store.Get(KeyLastActivity))
	})
}

func TestTrackerAnonymous(t *testing.T) {
	t.Parallel()

	tracker := NewTracker(NewMemoryStore(), 30*time.Minute)
	require.Equal(t, Anonymous, tracker.State())

	decision := tracker.Check()
	require.False(t, decision.Allow)
	require.Equal(t, LoginPath, decision.RedirectTo)
}

func TestTrackerTouchExtendsSession(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	clock := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewTracker(store, 30*time.Minute).
		WithClock(func() time.Time { return clock })

	tracker.Login("token-1", `{}`)

	// Interaction at minute 20 restarts the window; the session is still
	// live at minute 45.
	clock = clock.Add(20 * time.Minute)
	tracker.Touch()
	clock = clock.Add(25 * time.Minute)

	require.Equal(t, Active, tracker.State())
	require.True(t, tracker.Check().Allow)
}

func TestTrackerLogout(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	tracker := NewTracker(store, 30*time.Minute)
	tracker.Login("token-1", `{}`)

	tracker.Logout()
	require.Equal(t, Anonymous, tracker.State())
	require.Empty(t, store.Get(KeyToken))
}
