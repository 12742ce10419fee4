package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"farmstead/internal/middleware"
	"farmstead/internal/model"
	"farmstead/internal/service"
)

// NotificationHandler serves the per-user notification feed and the
// on-demand alert sweep.
type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	notifications, err := h.notifications.List(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

// Check runs the harvest, stock and weather sweeps for the caller and
// returns the refreshed feed.
func (h *NotificationHandler) Check(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	created, err := h.notifications.RunChecksForUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	notifications, err := h.notifications.List(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"created":       created,
		"notifications": notifications,
	})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.notifications.MarkRead(r.Context(), id, claims.UserID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	updated, err := h.notifications.MarkAllRead(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "All notifications marked as read",
		"updated": updated,
	})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.notifications.Delete(r.Context(), id, claims.UserID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.DeletedResponse{Message: "Notification deleted successfully"})
}
