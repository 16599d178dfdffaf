package api

import (
	"time"

	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/constants"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/httputil"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/metrics"
	appmiddleware "github.com/darkkaiser/fastnext-orchestrator/internal/service/api/middleware"
	applog "github.com/darkkaiser/fastnext-orchestrator/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// EnableHSTS HTTPS 서버일 때 Strict-Transport-Security 헤더를 추가합니다.
	EnableHSTS bool

	// CORS 교차 출처 요청 허용 정책. 비어 있으면 모든 출처를 허용합니다.
	CORS appmiddleware.CORSPolicy

	// RequestTimeout 요청 컨텍스트의 처리 제한 시간 (기본값: 60초)
	RequestTimeout time.Duration

	// Metrics 요청 지표 수집기. nil이면 지표를 수집하지 않습니다.
	Metrics *metrics.Metrics

	// RateLimit IP별 요청 속도 제한. nil이면 제한하지 않으며, 상태 엔드포인트에는 항상 적용되지 않습니다.
	RateLimit *RateLimitPolicy
}

// RateLimitPolicy IP별 요청 속도 제한 값
type RateLimitPolicy struct {
	RequestsPerSecond int
	Burst             int
}

// NewHTTPServer 미들웨어 체인이 구성된 Echo 인스턴스를 생성합니다.
//
// 미들웨어 적용 순서:
//
//  1. PanicRecovery: 이후 모든 미들웨어와 핸들러의 패닉을 500으로 변환
//  2. RequestID: X-Request-ID 부여
//  3. Server 헤더 제거
//  4. HTTPLogger: 에러 응답을 포함한 모든 요청 기록
//  5. Metrics: 요청 수와 처리 시간 기록
//  6. CORS: 이후 단계에서 거부된 응답(429, 413, 503)에도 CORS 헤더를 포함
//  7. RateLimiting: RateLimit이 설정된 경우에만 적용, /와 /api/health는 제외
//  8. BodyLimit: 128K 초과 시 413
//  9. ContextTimeout: 요청 컨텍스트 제한 시간 초과 시 503
//  10. Secure: 보안 헤더
//
// 라우트는 포함되지 않으며 RegisterRoutes로 별도 등록합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	// X-Forwarded-For 등 클라이언트가 조작할 수 있는 헤더는 신뢰하지 않는다.
	e.IPExtractor = echo.ExtractIPDirect()

	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}
	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Del(echo.HeaderServer)
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	if cfg.Metrics != nil {
		e.Use(cfg.Metrics.Middleware())
	}
	e.Use(appmiddleware.CORS(cfg.CORS))
	if cfg.RateLimit != nil {
		e.Use(appmiddleware.RateLimitingWithConfig(appmiddleware.RateLimitConfig{
			Skipper:           isStatusRoute,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: timeout,
	}))

	secure := middleware.DefaultSecureConfig
	if cfg.EnableHSTS {
		secure.HSTSMaxAge = 31536000
	}
	e.Use(middleware.SecureWithConfig(secure))

	return e
}

// isStatusRoute 상태 엔드포인트는 어떤 경우에도 200으로 응답해야 하므로 속도 제한에서 제외합니다.
func isStatusRoute(c echo.Context) bool {
	p := c.Path()
	return p == routeRoot || p == routeHealth
}
