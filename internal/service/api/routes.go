package api

import (
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/handler/status"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/handler/system"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/metrics"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const (
	routeRoot   = "/"
	routeHealth = "/api/health"
)

// RegisterRoutes API 서버의 전체 라우트를 등록합니다.
//
//   - GET /            서비스 상태
//   - GET /api/health  헬스체크
//   - GET /version     빌드 정보
//   - GET /metrics     Prometheus 지표 (m이 nil이면 등록하지 않음)
//   - GET /swagger/*   Swagger UI
func RegisterRoutes(e *echo.Echo, sh *status.Handler, yh *system.Handler, m *metrics.Metrics) {
	e.GET(routeRoot, sh.RootStatusHandler)
	e.GET(routeHealth, sh.HealthStatusHandler)

	e.GET("/version", yh.VersionHandler)

	if m != nil {
		e.GET("/metrics", m.Handler())
	}

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(
		echoSwagger.URL("/swagger/doc.json"),
		echoSwagger.DeepLinking(true),
		echoSwagger.DocExpansion("list"),
	))
}
