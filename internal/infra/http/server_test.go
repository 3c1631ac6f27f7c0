package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	s := New(":0", false)

	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/health", nil))

	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok","service":"gymdesk"}`, rec.Body.String())
}

func TestMetricsEndpointToggle(t *testing.T) {
	enabled := New(":0", true)
	rec := httptest.NewRecorder()
	enabled.srv.Handler.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/metrics", nil))
	assert.Equal(t, stdhttp.StatusOK, rec.Code)

	disabled := New(":0", false)
	rec = httptest.NewRecorder()
	disabled.srv.Handler.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/metrics", nil))
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
}
