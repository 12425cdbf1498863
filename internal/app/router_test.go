package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobwave/matchengine/internal/adapter/httpserver"
	"github.com/jobwave/matchengine/internal/config"
	"github.com/jobwave/matchengine/internal/usecase"
)

func analyzeServiceZero() usecase.AnalyzeService { return usecase.AnalyzeService{} }
func reportServiceZero() usecase.ReportService   { return usecase.ReportService{} }

func TestParseOrigins(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"*"}, ParseOrigins(""))
	assert.Equal(t, []string{"*"}, ParseOrigins("*"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, ParseOrigins(" https://a.example , https://b.example "))
	assert.Equal(t, []string{"*"}, ParseOrigins(" , "))
}

func TestBuildRouter_HealthAndSecurityHeaders(t *testing.T) {
	t.Parallel()
	cfg := config.Config{RateLimitPerMin: 10, CORSAllowOrigins: "*"}
	srv := httpserver.NewServer(cfg,
		// handlers are not exercised here, only routing and middleware
		analyzeServiceZero(), reportServiceZero(), nil, nil, nil)
	router := BuildRouter(cfg, srv)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestBuildRouter_Readyz_NoChecksConfigured(t *testing.T) {
	t.Parallel()
	cfg := config.Config{RateLimitPerMin: 10}
	db := func(context.Context) error { return nil }
	bad := func(context.Context) error { return fmt.Errorf("down") }
	srv := httpserver.NewServer(cfg, analyzeServiceZero(), reportServiceZero(), db, bad, db)
	router := BuildRouter(cfg, srv)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBuildRouter_MetricsExposed(t *testing.T) {
	t.Parallel()
	cfg := config.Config{RateLimitPerMin: 10}
	srv := httpserver.NewServer(cfg, analyzeServiceZero(), reportServiceZero(), nil, nil, nil)
	router := BuildRouter(cfg, srv)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
