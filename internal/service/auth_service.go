package service

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"farmstead/internal/model"
	"farmstead/pkg/apierror"
)

// UserStore is the slice of the user repository the auth flow needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u model.User) error
}

type AuthService struct {
	users       UserStore
	secret      []byte
	ttl         time.Duration
	idleTimeout time.Duration
	now         func() time.Time
}

// NewAuthService wires the credential flow. idleTimeout seeds the
// sessionTimeout security setting of new accounts, keeping the stored
// default in step with the client-side idle window.
func NewAuthService(users UserStore, jwtSecret string, ttl time.Duration, idleTimeout time.Duration) *AuthService {
	return &AuthService{
		users:       users,
		secret:      []byte(jwtSecret),
		ttl:         ttl,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// WithClock overrides the token clock. Used by tests to pin issuance and
// verification times.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

func (s *AuthService) Signup(ctx context.Context, name string, email string, password string) (string, model.AuthUser, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return "", model.AuthUser{}, apierror.BadRequest("name, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", model.AuthUser{}, apierror.BadRequest("invalid email address")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", model.AuthUser{}, err
	}
	if exists {
		return "", model.AuthUser{}, apierror.New("USER_EXISTS", "User already exists", "", http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", model.AuthUser{}, err
	}

	settings := model.DefaultSettings()
	if s.idleTimeout > 0 {
		settings.Security.SessionTimeout = int(s.idleTimeout.Minutes())
	}

	user := model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		Settings:     settings,
		JoinDate:     s.now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return "", model.AuthUser{}, err
	}

	token, err := s.Issue(user)
	if err != nil {
		return "", model.AuthUser{}, err
	}

	return token, user.Public(), nil
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (string, model.AuthUser, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		// A missing account and a wrong password are indistinguishable on
		// the wire.
		return "", model.AuthUser{}, apierror.New("INVALID_CREDENTIALS", "Invalid credentials", "", http.StatusBadRequest)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", model.AuthUser{}, apierror.New("INVALID_CREDENTIALS", "Invalid credentials", "", http.StatusBadRequest)
	}

	token, err := s.Issue(user)
	if err != nil {
		return "", model.AuthUser{}, err
	}

	return token, user.Public(), nil
}

// Issue mints a bearer token for the user, valid for the configured window
// from the current clock. There is no refresh path; re-login is the only
// renewal.
func (s *AuthService) Issue(user model.User) (string, error) {
	now := s.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

// Verify validates signature and expiry. Expired tokens surface
// model.ErrTokenExpired so callers can tell a stale session apart from a
// malformed or forged token (model.ErrTokenInvalid).
func (s *AuthService) Verify(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, model.ErrTokenInvalid
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, model.ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, model.ErrTokenInvalid
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrTokenInvalid
	}

	claims := &model.AuthClaims{}
	claims.UserID, _ = claimsMap["id"].(string)
	claims.Email, _ = claimsMap["email"].(string)
	claims.Name, _ = claimsMap["name"].(string)
	claims.Role, _ = claimsMap["role"].(string)

	if claims.UserID == "" {
		return nil, model.ErrTokenInvalid
	}

	return claims, nil
}
