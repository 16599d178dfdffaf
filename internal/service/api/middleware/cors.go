package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/constants"
	applog "github.com/darkkaiser/fastnext-orchestrator/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const wildcard = "*"

// CORSPolicy 교차 출처 요청 허용 정책
type CORSPolicy struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
}

// IsWildcard 허용 출처가 '*' 하나뿐인지 여부를 반환합니다. 빈 정책도 와일드카드로 취급합니다.
func (p CORSPolicy) IsWildcard() bool {
	return len(p.AllowOrigins) == 0 || (len(p.AllowOrigins) == 1 && p.AllowOrigins[0] == wildcard)
}

// CORS 정책에 맞는 CORS 미들웨어를 반환합니다.
//
// 와일드카드 정책이면 요청의 Origin 헤더 유무와 관계없이 모든 응답(에러 응답 포함)에
// Access-Control-Allow-Origin/Methods/Headers 헤더를 붙이고, OPTIONS 요청은 경로와 관계없이 204로 응답합니다.
// 출처가 명시된 정책이면 Echo의 CORS 미들웨어로 허용 목록을 강제합니다.
func CORS(policy CORSPolicy) echo.MiddlewareFunc {
	methods := joinOrWildcard(policy.AllowMethods)
	headers := joinOrWildcard(policy.AllowHeaders)

	if !policy.IsWildcard() {
		applog.WithComponentAndFields(constants.ComponentMiddlewareCORS, applog.Fields{
			"allow_origins": policy.AllowOrigins,
		}).Debug(constants.LogMsgCORSOriginPolicy)

		cfg := middleware.CORSConfig{AllowOrigins: policy.AllowOrigins}
		if methods != wildcard {
			cfg.AllowMethods = policy.AllowMethods
		}
		if headers != wildcard {
			cfg.AllowHeaders = policy.AllowHeaders
		}
		return middleware.CORSWithConfig(cfg)
	}

	applog.WithComponent(constants.ComponentMiddlewareCORS).Debug(constants.LogMsgCORSWildcardPolicy)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, wildcard)
			h.Set(echo.HeaderAccessControlAllowMethods, methods)
			h.Set(echo.HeaderAccessControlAllowHeaders, headers)

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}

func joinOrWildcard(values []string) string {
	if len(values) == 0 || slices.Contains(values, wildcard) {
		return wildcard
	}
	return strings.Join(values, ",")
}
