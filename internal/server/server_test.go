package server_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"petshop/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T, opts server.Options) *fiber.App {
	t.Helper()
	return server.New(opts, server.Services{}, zap.NewNop().Sugar())
}

func TestHealth(t *testing.T) {
	app := newApp(t, server.Options{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"status":"healthy"`)
}

func TestUnknownRouteIsJSON(t *testing.T) {
	app := newApp(t, server.Options{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/nope", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON))
}

func TestAuthRateLimit(t *testing.T) {
	app := newApp(t, server.Options{AuthRateLimit: 2})

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, codes)
}

func TestServesMedia(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "petshop", "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "petshop", "images", "dog.txt"), []byte("woof"), 0o644))

	app := newApp(t, server.Options{MediaDir: dir})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/media/petshop/images/dog.txt", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "woof", string(body))
}

func TestCORSPreflight(t *testing.T) {
	app := newApp(t, server.Options{CORSOrigins: "https://tienda.example"})

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "https://tienda.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://tienda.example", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}
