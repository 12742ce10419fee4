package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"farmstead/pkg/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.MemoryStore, *[]string) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	tracker := session.NewTracker(store, 30*time.Minute)

	var visited []string
	client := New(srv.URL, tracker, func(path string) {
		visited = append(visited, path)
	})
	return client, store, &visited
}

func TestClientGlobal401TearsDownSession(t *testing.T) {
	t.Parallel()

	endpoints := []string{"/api/crops", "/api/notifications", "/api/finance-analytics/summary"}

	for _, endpoint := range endpoints {
		t.Run(endpoint, func(t *testing.T) {
			client, store, visited := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Token has expired","code":"TOKEN_EXPIRED"}`))
			}))

			store.Set(session.KeyToken, "stale")
			store.Set(session.KeyUser, `{"id":"user-1"}`)
			store.Set(session.KeyLastActivity, "1700000000000")

			err := client.Get(context.Background(), endpoint, nil)
			require.Error(t, err)

			apiErr, ok := err.(*APIError)
			require.True(t, ok)
			require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
			require.Equal(t, "TOKEN_EXPIRED", apiErr.Code)

			require.Empty(t, store.Get(session.KeyToken))
			require.Empty(t, store.Get(session.KeyUser))
			require.Empty(t, store.Get(session.KeyLastActivity))
			require.Equal(t, []string{session.LoginPath}, *visited)
		})
	}
}

func TestClientSendsBearerAndStampsActivity(t *testing.T) {
	t.Parallel()

	var gotAuth string
	client, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	store.Set(session.KeyToken, "token-1")

	var out []map[string]any
	require.NoError(t, client.Get(context.Background(), "/api/crops", &out))
	require.Equal(t, "Bearer token-1", gotAuth)
	require.NotEmpty(t, store.Get(session.KeyLastActivity))
}

func TestClientLoginPrimesTracker(t *testing.T) {
	t.Parallel()

	client, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"token-1","user":{"id":"user-1","email":"a@x.com"}}`))
	}))

	require.NoError(t, client.Login(context.Background(), "a@x.com", "secret"))
	require.Equal(t, "token-1", store.Get(session.KeyToken))
	require.Contains(t, store.Get(session.KeyUser), "a@x.com")
	require.NotEmpty(t, store.Get(session.KeyLastActivity))
}

func TestClientAuthFailurePassesThrough(t *testing.T) {
	t.Parallel()

	client, store, visited := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials","code":"INVALID_CREDENTIALS"}`))
	}))

	err := client.Login(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)

	// A 400 is not a session event: nothing cleared, no redirect.
	require.Empty(t, store.Get(session.KeyToken))
	require.Empty(t, *visited)
}
