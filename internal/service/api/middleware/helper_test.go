package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/httputil"
	applog "github.com/darkkaiser/fastnext-orchestrator/pkg/log"
	"github.com/labstack/echo/v4"
)

// captureLogs 표준 로거 출력을 JSON 형식으로 버퍼에 기록하고, 테스트 종료 시 원래 상태로 되돌립니다.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	logger := applog.StandardLogger()
	prevOut, prevFormatter, prevLevel := logger.Out, logger.Formatter, logger.GetLevel()

	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	logger.SetFormatter(&applog.JSONFormatter{})
	logger.SetLevel(applog.DebugLevel)

	t.Cleanup(func() {
		logger.SetOutput(prevOut)
		logger.SetFormatter(prevFormatter)
		logger.SetLevel(prevLevel)
	})

	return buf
}

// logLines 버퍼에 기록된 JSON 로그를 줄 단위로 반환합니다.
func logLines(buf *bytes.Buffer) []string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler
	return e
}

func doRequest(e *echo.Echo, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
