package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"farmstead/internal/model"
	"farmstead/pkg/apierror"
)

type fakeCropStore struct {
	crops map[string]model.Crop
	order []string
}

func newFakeCropStore() *fakeCropStore {
	return &fakeCropStore{crops: map[string]model.Crop{}}
}

func (f *fakeCropStore) Name() string { return "Crop" }

func (f *fakeCropStore) List(context.Context) ([]model.Crop, error) {
	out := make([]model.Crop, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.crops[id])
	}
	return out, nil
}

func (f *fakeCropStore) Get(_ context.Context, id string) (model.Crop, error) {
	crop, ok := f.crops[id]
	if !ok {
		return model.Crop{}, apierror.NotFound("Crop not found", id)
	}
	return crop, nil
}

func (f *fakeCropStore) Create(_ context.Context, id string, rec model.Crop) error {
	rec.ID = id
	f.crops[id] = rec
	f.order = append(f.order, id)
	return nil
}

func (f *fakeCropStore) Update(_ context.Context, id string, rec model.Crop) error {
	if _, ok := f.crops[id]; !ok {
		return apierror.NotFound("Crop not found", id)
	}
	rec.ID = id
	f.crops[id] = rec
	return nil
}

func (f *fakeCropStore) Delete(_ context.Context, id string) error {
	if _, ok := f.crops[id]; !ok {
		return apierror.NotFound("Crop not found", id)
	}
	delete(f.crops, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func cropTestRouter(store *fakeCropStore) chi.Router {
	r := chi.NewRouter()
	r.Mount("/api/crops", NewResourceHandler[model.Crop](store).Routes())
	return r
}

func doRequest(t *testing.T, router chi.Router, method string, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestResourceHandlerCRUD(t *testing.T) {
	t.Parallel()

	store := newFakeCropStore()
	router := cropTestRouter(store)

	t.Run("empty list", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/crops", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, "[]", rec.Body.String())
	})

	var createdID string

	t.Run("create", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/crops",
			`{"cropType":"Rice","scientificName":"Oryza sativa","location":"Field A"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created model.Crop
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		require.NotEmpty(t, created.ID)
		require.Equal(t, "Rice", created.CropType)
		createdID = created.ID
	})

	t.Run("get", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/crops/"+createdID, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got model.Crop
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, createdID, got.ID)
	})

	t.Run("update", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPut, "/api/crops/"+createdID,
			`{"cropType":"Rice","scientificName":"Oryza sativa","location":"Field B"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var updated model.Crop
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		require.Equal(t, "Field B", updated.Location)
	})

	t.Run("delete", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodDelete, "/api/crops/"+createdID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Crop deleted successfully")

		rec = doRequest(t, router, http.MethodGet, "/api/crops/"+createdID, "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestResourceHandlerErrors(t *testing.T) {
	t.Parallel()

	router := cropTestRouter(newFakeCropStore())

	t.Run("unknown id is 404", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/crops/nope", "")
		require.Equal(t, http.StatusNotFound, rec.Code)

		var body model.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "NOT_FOUND", body.Code)
	})

	t.Run("missing required field is 400", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/crops", `{"scientificName":"Oryza sativa"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body model.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "BAD_REQUEST", body.Code)
		require.Equal(t, "cropType is required", body.Message)
	})

	t.Run("malformed JSON is 400", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/crops", `{"cropType":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
