package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/RividuPesara/apex-auto/internal/api"
	"github.com/RividuPesara/apex-auto/internal/jwt"
	"github.com/RividuPesara/apex-auto/internal/model"
	"github.com/RividuPesara/apex-auto/internal/service"
)

// fakeBuildService counts calls so tests can assert the store is never
// reached when the gate rejects a request.
type fakeBuildService struct {
	calls     int
	build     *model.Build
	err       error
	deleteErr error
}

func (f *fakeBuildService) CreateBuild(ctx context.Context, ownerID uuid.UUID, input service.CreateBuildInput) (*model.Build, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.build, nil
}

func (f *fakeBuildService) ListBuilds(ctx context.Context, ownerID uuid.UUID) ([]model.Build, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []model.Build{}, nil
}

func (f *fakeBuildService) UpdateBuild(ctx context.Context, buildID, ownerID uuid.UUID, patch service.BuildPatch) (*model.Build, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.build, nil
}

func (f *fakeBuildService) DeleteBuild(ctx context.Context, buildID, ownerID uuid.UUID) error {
	f.calls++
	return f.deleteErr
}

func newBuildApp(svc service.BuildService) *fiber.App {
	app := fiber.New()
	handler := api.NewBuildHandler(svc, nil)

	builds := app.Group("/api/builds", api.AuthMiddleware())
	builds.Post("/", handler.CreateBuild)
	builds.Get("/", handler.ListBuilds)
	builds.Get("/upload-url", handler.GetUploadURL)
	builds.Put("/:id", handler.UpdateBuild)
	builds.Delete("/:id", handler.DeleteBuild)

	return app
}

func validToken(t *testing.T) string {
	t.Helper()
	access, _, err := jwt.GenerateTokens(&model.User{ID: uuid.New(), Name: "Driver", Email: "driver@apex.test"})
	require.NoError(t, err)
	return access
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestAuthMiddleware_MissingHeaderNeverReachesStore(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := &fakeBuildService{}
	app := newBuildApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/builds/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Missing authorization header", body["message"])
	require.Zero(t, svc.calls)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := &fakeBuildService{}
	app := newBuildApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/builds/", nil)
	req.Header.Set("Authorization", "Token abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	require.Equal(t, "Invalid authorization header format", body["message"])
	require.Zero(t, svc.calls)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := &fakeBuildService{}
	app := newBuildApp(svc)

	expired, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/builds/", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	require.Equal(t, "Token has expired", body["message"])
	require.Zero(t, svc.calls)
}

func TestAuthMiddleware_WrongSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := &fakeBuildService{}
	app := newBuildApp(svc)

	forged, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("not-the-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/builds/", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Zero(t, svc.calls)
}

func TestCreateBuild_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := &fakeBuildService{build: &model.Build{ID: uuid.New(), CarModel: "porsche-911-turbo-s", Color: "#FF6B35"}}
	app := newBuildApp(svc)

	payload, _ := json.Marshal(map[string]interface{}{
		"carModel": "porsche-911-turbo-s",
		"color":    "#FF6B35",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/builds/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+validToken(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	require.Equal(t, true, body["success"])
	require.NotNil(t, body["build"])
	require.Equal(t, 1, svc.calls)
}

func TestCreateBuild_MissingRequiredFields(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := &fakeBuildService{}
	app := newBuildApp(svc)

	payload, _ := json.Marshal(map[string]interface{}{"color": "#FF6B35"})
	req := httptest.NewRequest(http.MethodPost, "/api/builds/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+validToken(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Zero(t, svc.calls, "validation failures stop before the service")
}

func TestUpdateBuild_ErrorStatusMapping(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cases := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{"not found", service.ErrBuildNotFound, http.StatusNotFound, "Build not found"},
		{"foreign owner", service.ErrNotOwner, http.StatusForbidden, "Not authorized to update this build"},
		{"blank color", service.ErrColorRequired, http.StatusBadRequest, "color is required"},
		{"blank car model", service.ErrCarModelRequired, http.StatusBadRequest, "car model is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeBuildService{err: tc.serviceErr}
			app := newBuildApp(svc)

			payload, _ := json.Marshal(map[string]interface{}{"notes": "change"})
			req := httptest.NewRequest(http.MethodPut, "/api/builds/"+uuid.New().String(), bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+validToken(t))

			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.wantStatus, resp.StatusCode)

			body := decodeEnvelope(t, resp)
			require.Equal(t, false, body["success"])
			require.Equal(t, tc.wantMsg, body["message"])
		})
	}
}

func TestUpdateBuild_InvalidIDFormat(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := &fakeBuildService{}
	app := newBuildApp(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/builds/not-a-uuid", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+validToken(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Zero(t, svc.calls)
}

func TestDeleteBuild_ForeignOwner(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := &fakeBuildService{deleteErr: service.ErrNotOwner}
	app := newBuildApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/builds/"+uuid.New().String(), nil)
	req.Header.Set("Authorization", "Bearer "+validToken(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	require.Equal(t, "Not authorized to delete this build", body["message"])
}

func TestGetUploadURL_UnconfiguredStorage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newBuildApp(&fakeBuildService{})

	req := httptest.NewRequest(http.MethodGet, "/api/builds/upload-url", nil)
	req.Header.Set("Authorization", "Bearer "+validToken(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
