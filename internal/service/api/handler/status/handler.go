// Package status 루트 상태와 헬스체크 엔드포인트 핸들러를 제공합니다.
//
// 응답 본문은 핸들러 생성 시 한 번 직렬화되며 이후 변경되지 않으므로,
// 같은 요청에는 항상 바이트 단위로 동일한 본문이 반환됩니다.
package status

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/darkkaiser/fastnext-orchestrator/internal/config"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/constants"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/model/status"
	applog "github.com/darkkaiser/fastnext-orchestrator/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler 상태 엔드포인트 핸들러
type Handler struct {
	rootBody   []byte
	healthBody []byte
}

// NewHandler 설정의 상태 값으로 응답 본문을 미리 만들어 둔 Handler를 생성합니다.
func NewHandler(cfg config.StatusConfig) *Handler {
	return &Handler{
		rootBody: mustMarshal(status.RootStatusResponse{
			Project: cfg.Project,
			Status:  cfg.Status,
		}),
		healthBody: mustMarshal(status.HealthStatusResponse{
			Status:       cfg.HealthStatus,
			Version:      cfg.Version,
			Engine:       cfg.Engine,
			Orchestrator: cfg.Orchestrator,
		}),
	}
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf(constants.PanicMsgStatusEncodeFailed, err))
	}
	return b
}

// RootStatusHandler godoc
// @Summary 서비스 상태
// @Description 서비스 이름과 동작 상태를 반환합니다.
// @Tags Status
// @Produce json
// @Success 200 {object} status.RootStatusResponse "서비스 상태"
// @Router / [get]
func (h *Handler) RootStatusHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/",
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgRootStatus)

	return c.JSONBlob(http.StatusOK, h.rootBody)
}

// HealthStatusHandler godoc
// @Summary 헬스체크
// @Description 서비스 버전, 실행 엔진, 오케스트레이터 정보를 담은 고정 상태 값을 반환합니다.
// @Description 실제 의존성 점검은 수행하지 않습니다.
// @Tags Status
// @Produce json
// @Success 200 {object} status.HealthStatusResponse "헬스체크 결과"
// @Router /api/health [get]
func (h *Handler) HealthStatusHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/api/health",
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthStatus)

	return c.JSONBlob(http.StatusOK, h.healthBody)
}
