package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"farmstead/internal/model"
	"farmstead/pkg/apierror"
)

type fakeUserStore struct {
	byEmail map[string]model.User
	created []model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]model.User{}}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserStore) Create(_ context.Context, u model.User) error {
	f.byEmail[u.Email] = u
	f.created = append(f.created, u)
	return nil
}

func TestAuthServiceTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(newFakeUserStore(), "test-secret", 24*time.Hour, 30*time.Minute)

	user := model.User{
		ID:    "user-1",
		Name:  "Asha",
		Email: "asha@example.com",
		Role:  model.RoleUser,
	}

	token, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, user.Name, claims.Name)
	require.Equal(t, user.Role, claims.Role)
}

func TestAuthServiceExpiryBoundary(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	clock := issuedAt
	svc := NewAuthService(newFakeUserStore(), "test-secret", 24*time.Hour, 30*time.Minute).
		WithClock(func() time.Time { return clock })

	token, err := svc.Issue(model.User{ID: "user-1", Email: "a@x.com"})
	require.NoError(t, err)

	t.Run("accepted just before expiry", func(t *testing.T) {
		clock = issuedAt.Add(24*time.Hour - time.Second)
		claims, verifyErr := svc.Verify(token)
		require.NoError(t, verifyErr)
		require.Equal(t, "user-1", claims.UserID)
	})

	t.Run("rejected just after expiry", func(t *testing.T) {
		clock = issuedAt.Add(24*time.Hour + time.Second)
		_, verifyErr := svc.Verify(token)
		require.ErrorIs(t, verifyErr, model.ErrTokenExpired)
	})
}

func TestAuthServiceVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(newFakeUserStore(), "test-secret", 24*time.Hour, 30*time.Minute)

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.Verify("garbage")
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := NewAuthService(newFakeUserStore(), "other-secret", 24*time.Hour, 30*time.Minute)
		token, err := other.Issue(model.User{ID: "user-1"})
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})
}

func TestAuthServiceSignup(t *testing.T) {
	t.Parallel()

	t.Run("creates user and returns working token", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewAuthService(store, "test-secret", 24*time.Hour, 30*time.Minute)

		token, user, err := svc.Signup(context.Background(), "A", "a@x.com", "secret")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.Equal(t, "a@x.com", user.Email)
		require.Equal(t, model.RoleUser, user.Role)
		require.Len(t, store.created, 1)
		require.NotEqual(t, "secret", store.created[0].PasswordHash)

		claims, err := svc.Verify(token)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.UserID)
	})

	t.Run("seeds sessionTimeout from the configured idle window", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewAuthService(store, "test-secret", 24*time.Hour, 45*time.Minute)

		_, user, err := svc.Signup(context.Background(), "A", "a@x.com", "secret")
		require.NoError(t, err)
		require.Equal(t, 45, user.Settings.Security.SessionTimeout)
		require.Equal(t, 45, store.created[0].Settings.Security.SessionTimeout)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewAuthService(store, "test-secret", 24*time.Hour, 30*time.Minute)

		_, _, err := svc.Signup(context.Background(), "A", "a@x.com", "secret")
		require.NoError(t, err)

		_, _, err = svc.Signup(context.Background(), "B", "a@x.com", "another")
		var apiErr *apierror.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "USER_EXISTS", apiErr.Code)
		require.Equal(t, 400, apiErr.HTTPStatus)
	})

	t.Run("rejects missing fields and bad email", func(t *testing.T) {
		svc := NewAuthService(newFakeUserStore(), "test-secret", 24*time.Hour, 30*time.Minute)

		_, _, err := svc.Signup(context.Background(), "", "a@x.com", "secret")
		require.Error(t, err)

		_, _, err = svc.Signup(context.Background(), "A", "not-an-email", "secret")
		require.Error(t, err)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := NewAuthService(store, "test-secret", 24*time.Hour, 30*time.Minute)
	_, _, err := svc.Signup(context.Background(), "A", "a@x.com", "secret")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, user, loginErr := svc.Login(context.Background(), "a@x.com", "secret")
		require.NoError(t, loginErr)
		require.NotEmpty(t, token)
		require.Equal(t, "a@x.com", user.Email)
	})

	invalidCredentials := func(t *testing.T, loginErr error) {
		t.Helper()
		var apiErr *apierror.APIError
		require.True(t, errors.As(loginErr, &apiErr))
		require.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
		require.Equal(t, 400, apiErr.HTTPStatus)
	}

	t.Run("wrong password", func(t *testing.T) {
		_, _, loginErr := svc.Login(context.Background(), "a@x.com", "wrong")
		invalidCredentials(t, loginErr)
	})

	t.Run("unknown account is indistinguishable", func(t *testing.T) {
		_, _, loginErr := svc.Login(context.Background(), "nobody@x.com", "secret")
		invalidCredentials(t, loginErr)
	})
}
