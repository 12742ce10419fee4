package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"farmstead/internal/model"
	"farmstead/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := model.ErrorResponse{
		Message: "Something went wrong!",
		Code:    "SERVER_ERROR",
	}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Message = apiErr.Message
		body.Code = apiErr.Code
		body.Details = apiErr.Details
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		body.Message = "User not found"
		body.Code = "NOT_FOUND"
	case errors.Is(err, model.ErrUserAlreadyExists):
		status = http.StatusBadRequest
		body.Message = "User already exists"
		body.Code = "USER_EXISTS"
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusBadRequest
		body.Message = "Invalid credentials"
		body.Code = "INVALID_CREDENTIALS"
	case errors.Is(err, model.ErrRecordNotFound), errors.Is(err, model.ErrNotificationNotFound):
		status = http.StatusNotFound
		body.Message = "Record not found"
		body.Code = "NOT_FOUND"
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		body.Message = "Authentication required"
		body.Code = "UNAUTHORIZED"
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		body.Message = "Insufficient permissions"
		body.Code = "FORBIDDEN"
	case errors.Is(err, model.ErrTokenExpired):
		status = http.StatusUnauthorized
		body.Message = "Token has expired"
		body.Code = "TOKEN_EXPIRED"
	case errors.Is(err, model.ErrTokenInvalid):
		status = http.StatusUnauthorized
		body.Message = "Invalid token"
		body.Code = "INVALID_TOKEN"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		body.Message = err.Error()
		body.Code = "BAD_REQUEST"
	default:
		// Unclassified errors stay generic on the wire but land in the logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, status, body)
}
