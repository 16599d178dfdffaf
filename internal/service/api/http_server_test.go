package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/darkkaiser/fastnext-orchestrator/internal/config"
	"github.com/darkkaiser/fastnext-orchestrator/internal/pkg/version"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/handler/status"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/handler/system"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/metrics"
	appmiddleware "github.com/darkkaiser/fastnext-orchestrator/internal/service/api/middleware"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const (
	expectedRootBody   = `{"project":"FastNext Orchestrator","status":"Online"}`
	expectedHealthBody = `{"status":"Healthy","version":"1.0.0","engine":"Echo","orchestrator":"Kubernetes"}`
)

// =============================================================================
// Test Helpers
// =============================================================================

func defaultStatusConfig() config.StatusConfig {
	return config.StatusConfig{
		Project:      config.DefaultProject,
		Status:       config.DefaultStatus,
		HealthStatus: config.DefaultHealthStatus,
		Version:      config.DefaultVersion,
		Engine:       config.DefaultEngine,
		Orchestrator: config.DefaultOrchestrator,
	}
}

func wildcardPolicy() appmiddleware.CORSPolicy {
	return appmiddleware.CORSPolicy{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"*"},
		AllowHeaders: []string{"*"},
	}
}

// newTestServer 라우트까지 등록된 Echo 인스턴스를 생성합니다.
func newTestServer(t *testing.T, policy appmiddleware.CORSPolicy, debug bool, rateLimit ...*RateLimitPolicy) (*echo.Echo, *metrics.Metrics) {
	t.Helper()

	cfg := HTTPServerConfig{
		Debug:   debug,
		CORS:    policy,
		Metrics: metrics.New(),
	}
	if len(rateLimit) > 0 {
		cfg.RateLimit = rateLimit[0]
	}

	m := cfg.Metrics
	e := NewHTTPServer(cfg)
	RegisterRoutes(e, status.NewHandler(defaultStatusConfig()), system.NewHandler(version.Info{
		Version:     "1.0.0",
		Commit:      "f25b8bf",
		BuildDate:   "2026-10-01T14:00:00Z",
		BuildNumber: "100",
		GoVersion:   "go1.24.11",
	}), m)

	return e, m
}

func serve(e *echo.Echo, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func assertWildcardCORS(t *testing.T, h http.Header) {
	t.Helper()
	assert.Equal(t, "*", h.Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "*", h.Get(echo.HeaderAccessControlAllowMethods))
	assert.Equal(t, "*", h.Get(echo.HeaderAccessControlAllowHeaders))
}

// =============================================================================
// Endpoint Tests
// =============================================================================

func TestHTTPServer_StatusEndpoints(t *testing.T) {
	for _, debug := range []bool{false, true} {
		e, _ := newTestServer(t, wildcardPolicy(), debug)

		tests := []struct {
			name     string
			path     string
			expected string
		}{
			{"Root", "/", expectedRootBody},
			{"Health", "/api/health", expectedHealthBody},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := serve(e, http.MethodGet, tt.path, nil)

				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, tt.expected, rec.Body.String(), "debug 모드와 관계없이 본문은 고정된 compact JSON이어야 합니다 (debug=%v)", debug)
				assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
				assertWildcardCORS(t, rec.Header())
			})
		}
	}
}

func TestHTTPServer_IdenticalRequestsReturnIdenticalBodies(t *testing.T) {
	e, _ := newTestServer(t, wildcardPolicy(), false)

	for _, path := range []string{"/", "/api/health"} {
		first := serve(e, http.MethodGet, path, nil).Body.Bytes()
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, serve(e, http.MethodGet, path, nil).Body.Bytes(), "path: %s", path)
		}
	}
}

func TestHTTPServer_VersionEndpoint(t *testing.T) {
	e, _ := newTestServer(t, wildcardPolicy(), false)

	rec := serve(e, http.MethodGet, "/version", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, "1.0.0", gjson.Get(body, "version").String())
	assert.Equal(t, "f25b8bf", gjson.Get(body, "commit").String())
	assert.Equal(t, "2026-10-01T14:00:00Z", gjson.Get(body, "build_date").String())
	assert.Equal(t, "100", gjson.Get(body, "build_number").String())
	assert.Equal(t, "go1.24.11", gjson.Get(body, "go_version").String())
}

func TestHTTPServer_SwaggerDoc(t *testing.T) {
	e, _ := newTestServer(t, wildcardPolicy(), false)

	rec := serve(e, http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, "FastNext Orchestrator API", gjson.Get(body, "info.title").String())
	assert.True(t, gjson.Get(body, `paths./api/health.get`).Exists())
}

// =============================================================================
// Error Handling Tests
// =============================================================================

func TestHTTPServer_Errors(t *testing.T) {
	e, _ := newTestServer(t, wildcardPolicy(), false)

	tests := []struct {
		name   string
		method string
		path   string
		code   int
	}{
		{"존재하지 않는 경로", http.MethodGet, "/nonexistent", http.StatusNotFound},
		{"존재하지 않는 하위 경로", http.MethodGet, "/api/nonexistent", http.StatusNotFound},
		{"루트 POST", http.MethodPost, "/", http.StatusMethodNotAllowed},
		{"헬스체크 DELETE", http.MethodDelete, "/api/health", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, tt.method, tt.path, nil)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, int64(tt.code), gjson.Get(rec.Body.String(), "result_code").Int())
			assert.NotEmpty(t, gjson.Get(rec.Body.String(), "message").String())
			assertWildcardCORS(t, rec.Header())
		})
	}
}

func TestHTTPServer_HeadErrorHasNoBody(t *testing.T) {
	e, _ := newTestServer(t, wildcardPolicy(), false)

	rec := serve(e, http.MethodHead, "/nonexistent", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHTTPServer_PanicRecovery(t *testing.T) {
	e, _ := newTestServer(t, wildcardPolicy(), false)
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})

	rec := serve(e, http.MethodGet, "/panic", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, int64(500), gjson.Get(rec.Body.String(), "result_code").Int())
	assertWildcardCORS(t, rec.Header())

	// 서버는 계속 응답해야 한다.
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/", nil).Code)
}

func TestHTTPServer_BodyLimit(t *testing.T) {
	e, _ := newTestServer(t, wildcardPolicy(), false)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 129*1024)))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assertWildcardCORS(t, rec.Header())
}

func TestHTTPServer_RateLimiting(t *testing.T) {
	e, _ := newTestServer(t, wildcardPolicy(), false, &RateLimitPolicy{RequestsPerSecond: 1, Burst: 5})

	var limited *httptest.ResponseRecorder
	for i := 0; i < 100 && limited == nil; i++ {
		if rec := serve(e, http.MethodGet, "/version", nil); rec.Code == http.StatusTooManyRequests {
			limited = rec
		}
	}

	require.NotNil(t, limited, "버스트를 초과하면 429가 반환되어야 합니다")
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))
	assert.Equal(t, int64(429), gjson.Get(limited.Body.String(), "result_code").Int())
	assertWildcardCORS(t, limited.Header())

	// 다른 IP는 영향을 받지 않는다.
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req.RemoteAddr = "198.51.100.7:4321"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// X-Forwarded-For를 바꿔도 제한을 우회할 수 없다.
	spoofed := serve(e, http.MethodGet, "/version", map[string]string{echo.HeaderXForwardedFor: "203.0.113.99"})
	assert.Equal(t, http.StatusTooManyRequests, spoofed.Code)
}

func TestHTTPServer_StatusEndpointsAlwaysSucceed(t *testing.T) {
	tests := []struct {
		name      string
		rateLimit *RateLimitPolicy
	}{
		{"속도 제한 비활성화", nil},
		{"속도 제한 활성화", &RateLimitPolicy{RequestsPerSecond: 1, Burst: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestServer(t, wildcardPolicy(), false, tt.rateLimit)

			for _, path := range []string{"/", "/api/health"} {
				for i := 0; i < 100; i++ {
					rec := serve(e, http.MethodGet, path, nil)
					require.Equal(t, http.StatusOK, rec.Code, "%s 요청 %d", path, i+1)
				}
			}
		})
	}
}

// =============================================================================
// CORS Tests
// =============================================================================

func TestHTTPServer_WildcardCORS_Preflight(t *testing.T) {
	e, _ := newTestServer(t, wildcardPolicy(), false)

	for _, path := range []string{"/", "/api/health", "/nonexistent"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(e, http.MethodOptions, path, map[string]string{
				echo.HeaderOrigin:                     "https://app.fastnext.io",
				echo.HeaderAccessControlRequestMethod: http.MethodGet,
			})

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Empty(t, rec.Body.String())
			assertWildcardCORS(t, rec.Header())
		})
	}
}

func TestHTTPServer_WildcardCORS_WithoutOriginHeader(t *testing.T) {
	e, _ := newTestServer(t, wildcardPolicy(), false)

	rec := serve(e, http.MethodGet, "/api/health", nil)
	assertWildcardCORS(t, rec.Header())
}

func TestHTTPServer_RestrictedCORS(t *testing.T) {
	e, _ := newTestServer(t, appmiddleware.CORSPolicy{
		AllowOrigins: []string{"https://app.fastnext.io"},
		AllowMethods: []string{"*"},
		AllowHeaders: []string{"*"},
	}, false)

	t.Run("허용된 출처", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/", map[string]string{echo.HeaderOrigin: "https://app.fastnext.io"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://app.fastnext.io", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})

	t.Run("허용되지 않은 출처", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/", map[string]string{echo.HeaderOrigin: "https://evil.example.com"})
		assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})

	t.Run("Preflight", func(t *testing.T) {
		rec := serve(e, http.MethodOptions, "/", map[string]string{
			echo.HeaderOrigin:                     "https://app.fastnext.io",
			echo.HeaderAccessControlRequestMethod: http.MethodGet,
		})
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://app.fastnext.io", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})
}

// =============================================================================
// Middleware Chain Tests
// =============================================================================

func TestHTTPServer_StandardHeaders(t *testing.T) {
	e, _ := newTestServer(t, wildcardPolicy(), false)

	rec := serve(e, http.MethodGet, "/", nil)

	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Empty(t, rec.Header().Get(echo.HeaderServer))
	assert.Equal(t, "nosniff", rec.Header().Get(echo.HeaderXContentTypeOptions))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get(echo.HeaderXFrameOptions))
}

func TestHTTPServer_Config(t *testing.T) {
	e := NewHTTPServer(HTTPServerConfig{Debug: true})

	assert.True(t, e.Debug)
	assert.True(t, e.HideBanner)
	assert.Equal(t, 30*time.Second, e.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, e.Server.ReadHeaderTimeout)
	assert.Equal(t, 30*time.Second, e.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, e.Server.IdleTimeout)

	// 지표 수집기가 없으면 /metrics가 등록되지 않는다.
	RegisterRoutes(e, status.NewHandler(defaultStatusConfig()), system.NewHandler(version.Info{}), nil)
	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodGet, "/metrics", nil).Code)
}

func TestHTTPServer_Metrics(t *testing.T) {
	e, _ := newTestServer(t, wildcardPolicy(), false)

	serve(e, http.MethodGet, "/", nil)
	serve(e, http.MethodGet, "/", nil)
	serve(e, http.MethodGet, "/nonexistent", nil)

	rec := serve(e, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, `fastnext_http_requests_total{method="GET",path="/",status="200"} 2`)
	assert.Contains(t, text, `status="404"`)
	assert.Contains(t, text, `fastnext_http_request_duration_seconds_bucket{method="GET",path="/"`)
	assert.Contains(t, text, "go_goroutines")
}
