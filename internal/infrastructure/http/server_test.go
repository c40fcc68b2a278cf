package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	handlers "github.com/wekeepgrowing/premier-subscription/internal/adapter/handler/http"
	"github.com/wekeepgrowing/premier-subscription/internal/config"
	"go.uber.org/zap"
)

func newTestServer() *Server {
	cfg := &config.Config{
		Service: config.ServiceConfig{Name: "premier-subscription", Version: "test", ClientURL: "http://localhost:3000"},
		JWT:     config.JWTConfig{Secret: "secret", SkipPaths: []string{"/health", "/metrics", "/api/v1/plans"}},
	}
	return NewServer(cfg, zap.NewNop(), &handlers.Handlers{})
}

func TestServer_Health(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.Contains(t, rec.Body.String(), `"service":"premier-subscription"`)
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer()

	// one request so the HTTP counters have a sample
	s.Echo().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "premier_http_requests_total")
}

func TestServer_ProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/features", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_AUTH_HEADER")
}
