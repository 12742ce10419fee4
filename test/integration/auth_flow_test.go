//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignupLoginAndProtectedAccess(t *testing.T) {
	server := newTestServer(t)

	token, email := signup(t, server)

	t.Run("crops list with valid token", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/api/crops", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var crops []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&crops))
	})

	t.Run("no header is NO_AUTH_HEADER", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/api/crops", nil, "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "NO_AUTH_HEADER", body.Code)
	})

	t.Run("garbage token is INVALID_TOKEN", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/api/crops", nil, "garbage")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "INVALID_TOKEN", body.Code)
	})

	t.Run("duplicate signup is rejected", func(t *testing.T) {
		payload, err := json.Marshal(map[string]string{
			"name":     "Other",
			"email":    email,
			"password": "different",
		})
		require.NoError(t, err)

		resp, err := http.Post(server.URL+"/api/auth/signup", "application/json", bytes.NewReader(payload))
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "USER_EXISTS", body.Code)
	})

	t.Run("login returns fresh token", func(t *testing.T) {
		payload, err := json.Marshal(map[string]string{
			"email":    email,
			"password": "secret123",
		})
		require.NoError(t, err)

		resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(payload))
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var parsed struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
		require.NotEmpty(t, parsed.Token)
	})

	t.Run("wrong password is INVALID_CREDENTIALS", func(t *testing.T) {
		payload, err := json.Marshal(map[string]string{
			"email":    email,
			"password": "wrong",
		})
		require.NoError(t, err)

		resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(payload))
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCropCRUDRoundTrip(t *testing.T) {
	server := newTestServer(t)
	token, _ := signup(t, server)

	payload, err := json.Marshal(map[string]any{
		"cropType":       "Rice",
		"scientificName": "Oryza sativa",
		"location":       "Field A",
	})
	require.NoError(t, err)

	createResp := doJSON(t, http.MethodPost, server.URL+"/api/crops", payload, token)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)

	var created struct {
		ID       string `json:"id"`
		CropType string `json:"cropType"`
	}
	require.NoError(t, json.NewDecoder(createResp.Body).Decode(&created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Rice", created.CropType)

	update, err := json.Marshal(map[string]any{
		"cropType":       "Rice",
		"scientificName": "Oryza sativa",
		"location":       "Field B",
	})
	require.NoError(t, err)

	updateResp := doJSON(t, http.MethodPut, server.URL+"/api/crops/"+created.ID, update, token)
	require.Equal(t, http.StatusOK, updateResp.StatusCode)

	var updated struct {
		Location string `json:"location"`
	}
	require.NoError(t, json.NewDecoder(updateResp.Body).Decode(&updated))
	require.Equal(t, "Field B", updated.Location)

	deleteResp := doJSON(t, http.MethodDelete, server.URL+"/api/crops/"+created.ID, nil, token)
	require.Equal(t, http.StatusOK, deleteResp.StatusCode)

	getResp := doJSON(t, http.MethodGet, server.URL+"/api/crops/"+created.ID, nil, token)
	require.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestProfileAndSettings(t *testing.T) {
	server := newTestServer(t)
	token, email := signup(t, server)

	profileResp := doJSON(t, http.MethodGet, server.URL+"/api/profile", nil, token)
	require.Equal(t, http.StatusOK, profileResp.StatusCode)

	var profile struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	require.NoError(t, json.NewDecoder(profileResp.Body).Decode(&profile))
	require.Equal(t, email, profile.Email)

	update, err := json.Marshal(map[string]string{"location": "Pokhara"})
	require.NoError(t, err)

	updateResp := doJSON(t, http.MethodPut, server.URL+"/api/profile", update, token)
	require.Equal(t, http.StatusOK, updateResp.StatusCode)

	var updated struct {
		Location string `json:"location"`
		Name     string `json:"name"`
	}
	require.NoError(t, json.NewDecoder(updateResp.Body).Decode(&updated))
	require.Equal(t, "Pokhara", updated.Location)
	require.Equal(t, profile.Name, updated.Name)

	settingsResp := doJSON(t, http.MethodGet, server.URL+"/api/settings", nil, token)
	require.Equal(t, http.StatusOK, settingsResp.StatusCode)

	var settings struct {
		Appearance struct {
			Theme string `json:"theme"`
		} `json:"appearance"`
	}
	require.NoError(t, json.NewDecoder(settingsResp.Body).Decode(&settings))
	require.Equal(t, "light", settings.Appearance.Theme)
}

func TestNotificationFeed(t *testing.T) {
	server := newTestServer(t)
	token, _ := signup(t, server)

	listResp := doJSON(t, http.MethodGet, server.URL+"/api/notifications", nil, token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var notifications []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&notifications))

	checkResp := doJSON(t, http.MethodPost, server.URL+"/api/notifications/check", nil, token)
	require.Equal(t, http.StatusOK, checkResp.StatusCode)

	readAllResp := doJSON(t, http.MethodPut, server.URL+"/api/notifications/read-all", nil, token)
	require.Equal(t, http.StatusOK, readAllResp.StatusCode)
}
