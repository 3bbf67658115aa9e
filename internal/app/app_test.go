package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()
	t.Setenv("CLEANER_CONFIG_FILE", "/nonexistent/config.yaml")
	app, err := New()
	require.NoError(t, err)
	return app
}

func TestNew(t *testing.T) {
	app := newTestApp(t)
	assert.NotNil(t, app.Router)
	assert.NotNil(t, app.CleanService)
	assert.Equal(t, ":8080", app.Server.Addr)
}

func TestRouter_Healthz(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouter_Metrics(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
