package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"comunidad/internal/database"
	"comunidad/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS_Preflight(t *testing.T) {
	_, app, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/favoritos", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestCORS_ExplicitOriginAllowsCredentials(t *testing.T) {
	db := testutil.NewSQLiteDB(t, database.PersistentModels()...)
	cfg := testConfig()
	cfg.AllowedOrigins = "https://comunidad.example"
	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)
	app := srv.NewApp()

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("Origin", "https://comunidad.example")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "https://comunidad.example", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestGlobalLimiter(t *testing.T) {
	db := testutil.NewSQLiteDB(t, database.PersistentModels()...)
	cfg := testConfig()
	cfg.RequestsPerMinute = 2
	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)
	app := srv.NewApp()

	for i := 0; i < 2; i++ {
		status, _ := doJSON(t, app, http.MethodGet, "/health/live", nil)
		require.Equal(t, http.StatusOK, status)
	}
	status, body := doJSON(t, app, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, false, asMap(t, body)["success"])
}

func TestResponseHeaders(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestForumWebSocket_RequiresUpgrade(t *testing.T) {
	_, app, _ := newTestServer(t)

	status, _ := doJSON(t, app, http.MethodGet, "/ws/foro", nil)
	assert.Equal(t, http.StatusUpgradeRequired, status)
}
