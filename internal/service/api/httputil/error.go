package httputil

import (
	"errors"
	"net/http"

	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/constants"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/model/response"
	applog "github.com/darkkaiser/fastnext-orchestrator/pkg/log"
	"github.com/labstack/echo/v4"
)

// standardMessages Echo 기본 에러(영문 메시지)를 대체하는 상태 코드별 메시지입니다.
var standardMessages = map[int]string{
	http.StatusNotFound:              constants.ErrMsgNotFound,
	http.StatusMethodNotAllowed:      constants.ErrMsgMethodNotAllowed,
	http.StatusRequestEntityTooLarge: constants.ErrMsgRequestEntityTooLarge,
	http.StatusServiceUnavailable:    constants.ErrMsgServiceUnavailable,
}

// ErrorHandler Echo 전역 에러 핸들러입니다.
//
// 모든 에러를 ErrorResponse JSON으로 변환하고, 5xx는 Error, 4xx는 Warn 레벨로 기록합니다.
// HEAD 요청에는 본문 없이 상태 코드만 반환합니다.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := constants.ErrMsgInternalServer

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case response.ErrorResponse:
			message = m.Message
		case string:
			message = m
		}
		if msg, ok := standardMessages[code]; ok && !isErrorResponse(he) {
			message = msg
		}
	}

	fields := applog.Fields{
		"method":      c.Request().Method,
		"path":        c.Request().URL.Path,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

func isErrorResponse(he *echo.HTTPError) bool {
	_, ok := he.Message.(response.ErrorResponse)
	return ok
}
