package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"farmstead/internal/model"
	"farmstead/pkg/apierror"
)

// recordStore is the CRUD surface of repository.Records.
type recordStore[T any] interface {
	Name() string
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, id string, rec T) error
	Update(ctx context.Context, id string, rec T) error
	Delete(ctx context.Context, id string) error
}

// validatable lets each resource declare its required fields; see
// model.Crop.Validate and friends.
type validatable interface {
	Validate() error
}

// ResourceHandler serves the uniform CRUD contract every farm resource
// follows. One instantiation per resource replaces the per-entity handler
// copies the API would otherwise accumulate.
type ResourceHandler[T validatable] struct {
	store recordStore[T]
}

func NewResourceHandler[T validatable](store recordStore[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{store: store}
}

func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, apierror.BadRequest("id is required"))
		return
	}

	record, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload T
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if err := payload.Validate(); err != nil {
		writeError(w, err)
		return
	}

	id := uuid.NewString()
	if err := h.store.Create(r.Context(), id, payload); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, apierror.BadRequest("id is required"))
		return
	}

	var payload T
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if err := payload.Validate(); err != nil {
		writeError(w, err)
		return
	}

	if err := h.store.Update(r.Context(), id, payload); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, apierror.BadRequest("id is required"))
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.DeletedResponse{Message: h.store.Name() + " deleted successfully"})
}

// Routes mounts the CRUD contract on a subrouter.
func (h *ResourceHandler[T]) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
