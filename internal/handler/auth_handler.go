package handler

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"farmstead/internal/model"
	"farmstead/pkg/apierror"
)

type authenticator interface {
	Signup(ctx context.Context, name string, email string, password string) (string, model.AuthUser, error)
	Login(ctx context.Context, email string, password string) (string, model.AuthUser, error)
}

type AuthHandler struct {
	auth authenticator
}

func NewAuthHandler(auth authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	token, user, err := h.auth.Signup(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    user,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	token, user, err := h.auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.AuthResponse{Token: token, User: user})
}
