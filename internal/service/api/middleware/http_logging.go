package middleware

import (
	"net/url"
	"strconv"
	"time"

	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/constants"
	applog "github.com/darkkaiser/fastnext-orchestrator/pkg/log"
	"github.com/darkkaiser/fastnext-orchestrator/pkg/strutil"
	"github.com/labstack/echo/v4"
)

// HTTPLogger 요청마다 한 줄의 구조화된 접근 로그를 남기는 미들웨어를 반환합니다.
//
// 핸들러가 반환한 에러는 여기서 c.Error로 렌더링되므로, 로그의 status는 클라이언트가
// 실제로 받은 상태 코드와 같습니다. app_key, password 등 민감한 쿼리 값은 마스킹됩니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			latency := time.Since(start)

			bytesIn := req.Header.Get(echo.HeaderContentLength)
			if bytesIn == "" {
				bytesIn = "0"
			}

			path := req.URL.Path
			if path == "" {
				path = "/"
			}

			applog.WithComponentAndFields(constants.ComponentMiddlewareAccessLog, applog.Fields{
				"method":        req.Method,
				"path":          path,
				"route":         c.Path(),
				"uri":           maskSensitiveQueryParams(req.RequestURI),
				"host":          req.Host,
				"protocol":      req.Proto,
				"remote_ip":     c.RealIP(),
				"user_agent":    req.UserAgent(),
				"referer":       req.Referer(),
				"origin":        req.Header.Get(echo.HeaderOrigin),
				"status":        res.Status,
				"bytes_in":      bytesIn,
				"bytes_out":     strconv.FormatInt(res.Size, 10),
				"latency":       strconv.FormatInt(latency.Microseconds(), 10),
				"latency_human": latency.String(),
				"request_id":    res.Header().Get(echo.HeaderXRequestID),
			}).Info(constants.LogMsgHTTPRequest)

			return nil
		}
	}
}

// maskSensitiveQueryParams 예: "/?app_key=secret1234&id=1" -> "/?app_key=secr%2A%2A%2A&id=1"
// 파싱에 실패하면 원본을 반환합니다.
func maskSensitiveQueryParams(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.RawQuery == "" {
		return uri
	}

	q := u.Query()
	masked := false
	for _, param := range constants.SensitiveQueryParams {
		if q.Has(param) {
			q.Set(param, strutil.Mask(q.Get(param)))
			masked = true
		}
	}

	if !masked {
		return uri
	}

	u.RawQuery = q.Encode()
	return u.String()
}
