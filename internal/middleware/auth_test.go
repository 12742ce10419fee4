package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"farmstead/internal/model"
)

type stubVerifier struct {
	claims *model.AuthClaims
	err    error
}

func (s *stubVerifier) Verify(string) (*model.AuthClaims, error) {
	return s.claims, s.err
}

func gateResponse(t *testing.T, verifier *stubVerifier, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/crops", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	NewAuthMiddleware(verifier).RequireAuth(next).ServeHTTP(rec, req)
	return rec, reached
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequireAuthRejections(t *testing.T) {
	t.Parallel()

	okVerifier := &stubVerifier{claims: &model.AuthClaims{UserID: "user-1"}}

	tests := []struct {
		name       string
		header     string
		verifier   *stubVerifier
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing header",
			header:     "",
			verifier:   okVerifier,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "NO_AUTH_HEADER",
		},
		{
			name:       "wrong scheme",
			header:     "Token abc",
			verifier:   okVerifier,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_TOKEN_FORMAT",
		},
		{
			name:       "empty token",
			header:     "Bearer ",
			verifier:   okVerifier,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "EMPTY_TOKEN",
		},
		{
			name:       "expired token",
			header:     "Bearer stale",
			verifier:   &stubVerifier{err: model.ErrTokenExpired},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "TOKEN_EXPIRED",
		},
		{
			name:       "invalid token",
			header:     "Bearer garbage",
			verifier:   &stubVerifier{err: model.ErrTokenInvalid},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_TOKEN",
		},
		{
			name:       "verifier failure",
			header:     "Bearer anything",
			verifier:   &stubVerifier{err: model.ErrRecordNotFound},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "SERVER_ERROR",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, reached := gateResponse(t, tc.verifier, tc.header)
			require.False(t, reached)
			require.Equal(t, tc.wantStatus, rec.Code)
			require.Equal(t, tc.wantCode, decodeErrorBody(t, rec).Code)
		})
	}
}

func TestRequireAuthBindsClaims(t *testing.T) {
	t.Parallel()

	verifier := &stubVerifier{claims: &model.AuthClaims{UserID: "user-1", Role: model.RoleUser}}

	var got *model.AuthClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		got = claims
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/crops", nil)
	req.Header.Set("Authorization", "Bearer valid")
	rec := httptest.NewRecorder()
	NewAuthMiddleware(verifier).RequireAuth(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-1", got.UserID)
}

func TestRequireRoles(t *testing.T) {
	t.Parallel()

	verifier := &stubVerifier{claims: &model.AuthClaims{UserID: "user-1", Role: model.RoleUser}}
	mw := NewAuthMiddleware(verifier)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	call := func(roles ...string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/pest-info", nil)
		req.Header.Set("Authorization", "Bearer valid")
		rec := httptest.NewRecorder()
		mw.RequireAuth(mw.RequireRoles(roles...)(next)).ServeHTTP(rec, req)
		return rec
	}

	t.Run("role allowed", func(t *testing.T) {
		require.Equal(t, http.StatusOK, call(model.RoleUser).Code)
	})

	t.Run("role denied", func(t *testing.T) {
		rec := call(model.RoleAdmin)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, "FORBIDDEN", decodeErrorBody(t, rec).Code)
	})
}
