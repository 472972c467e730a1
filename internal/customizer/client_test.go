package customizer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RividuPesara/apex-auto/internal/customizer"
)

func TestClient_CreateBuild_SendsBearerToken(t *testing.T) {
	var gotAuth string
	var gotBody customizer.BuildPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/builds", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"build":   map[string]interface{}{"id": "b1", "carModel": gotBody.CarModel},
		})
	}))
	defer srv.Close()

	c := customizer.NewClient(srv.URL, func() string { return "token-123" })

	build, err := c.CreateBuild(context.Background(), customizer.BuildPayload{
		CarModel: "porsche-911-turbo-s",
		Color:    "#FF6B35",
	})
	require.NoError(t, err)
	require.Equal(t, "Bearer token-123", gotAuth)
	require.Equal(t, "b1", build.ID)
	require.Equal(t, "porsche-911-turbo-s", gotBody.CarModel)
}

func TestClient_AnonymousRequestOmitsAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "services": []interface{}{}})
	}))
	defer srv.Close()

	c := customizer.NewClient(srv.URL, nil)
	_, err := c.Services(context.Background())
	require.NoError(t, err)
}

func TestClient_ErrorEnvelopeBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Not authorized to update this build",
		})
	}))
	defer srv.Close()

	c := customizer.NewClient(srv.URL, func() string { return "token" })

	_, err := c.UpdateBuild(context.Background(), "b9", customizer.BuildPayload{})
	require.Error(t, err)

	var apiErr *customizer.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.Equal(t, "Not authorized to update this build", apiErr.Message)
}

func TestClient_CarModels_QueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/car-models", r.URL.Path)
		require.Equal(t, "turbo", r.URL.Query().Get("search"))
		require.Equal(t, "hot", r.URL.Query().Get("listingType"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":   true,
			"carModels": []map[string]interface{}{{"id": "porsche-911-turbo-s", "name": "Porsche 911 Turbo S"}},
		})
	}))
	defer srv.Close()

	c := customizer.NewClient(srv.URL, nil)
	models, err := c.CarModels(context.Background(), "turbo", "hot")
	require.NoError(t, err)
	require.Len(t, models, 1)
	require.Equal(t, "porsche-911-turbo-s", models[0].ID)
}

func TestClient_ServicesCached(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"services": []map[string]interface{}{
				{"id": "wheels", "name": "Wheel Upgrade", "price": 540000},
				{"id": "tune", "name": "ECU Tune", "price": 240000},
			},
		})
	}))
	defer srv.Close()

	c := customizer.NewClient(srv.URL, nil)

	first, err := c.Services(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)

	_, err = c.Services(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&hits), "second read should hit the cache")

	prices, err := c.ServicePrices(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(540000), prices["wheels"])
	require.Equal(t, int64(240000), prices["tune"])
	require.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestClient_DeleteBuild(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/builds/b3", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "Build deleted successfully"})
	}))
	defer srv.Close()

	c := customizer.NewClient(srv.URL, func() string { return "t" })
	require.NoError(t, c.DeleteBuild(context.Background(), "b3"))
}
