package middleware

import (
	"net/http"
	"runtime"

	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/constants"
	applog "github.com/darkkaiser/fastnext-orchestrator/pkg/log"
	"github.com/labstack/echo/v4"
)

// stackBufferSize 패닉 로그에 남길 스택 트레이스 버퍼 크기
const stackBufferSize = 4 << 10

// PanicRecovery 핸들러와 하위 미들웨어의 패닉을 복구해 500 응답으로 변환하는 미들웨어를 반환합니다.
// 체인의 가장 바깥에 등록해야 합니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (returnErr error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				err := newPanicError(r)

				stack := make([]byte, stackBufferSize)
				length := runtime.Stack(stack, false)

				fields := applog.Fields{
					"error":  err,
					"stack":  string(stack[:length]),
					"method": c.Request().Method,
					"path":   c.Request().URL.Path,
				}
				if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
					fields["request_id"] = requestID
				}

				applog.WithComponentAndFields(constants.ComponentMiddlewarePanicRecovery, fields).Error(constants.LogMsgPanicRecovered)

				c.Error(err)
				returnErr = nil
			}()

			return next(c)
		}
	}
}
