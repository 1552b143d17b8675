package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/processflow/server/models"
)

func TestRoutes_StatusBanner(t *testing.T) {
	h := newTestHandler(&mockAuthService{})
	router := h.Init()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var body models.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ProcessFlow backend running", body.Message)
	assert.Equal(t, "online", body.Status)
	assert.Equal(t, "test", body.Version)
	assert.NotEmpty(t, body.Timestamp)
}

func TestRoutes_NotFound(t *testing.T) {
	h := newTestHandler(&mockAuthService{})
	router := h.Init()

	r := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "route not found", decodeError(t, w).Error)
}

func TestRoutes_GuardedRouteWithoutToken(t *testing.T) {
	h := newTestHandler(&mockAuthService{})
	router := h.Init()

	r := httptest.NewRequest(http.MethodGet, "/api/verify", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid or expired token", decodeError(t, w).Error)
}

func TestRoutes_TraceIDHeader(t *testing.T) {
	h := newTestHandler(&mockAuthService{})
	router := h.Init()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}

func TestRoutes_TraceIDPassthrough(t *testing.T) {
	h := newTestHandler(&mockAuthService{})
	router := h.Init()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Trace-ID", "incoming-trace-id")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	assert.Equal(t, "incoming-trace-id", w.Header().Get("X-Trace-ID"))
}
