// Package system 빌드 정보 등 시스템 엔드포인트 핸들러를 제공합니다.
package system

import (
	"net/http"

	"github.com/darkkaiser/fastnext-orchestrator/internal/pkg/version"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/constants"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/model/system"
	applog "github.com/darkkaiser/fastnext-orchestrator/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler 시스템 엔드포인트 핸들러
type Handler struct {
	buildInfo version.Info
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(buildInfo version.Info) *Handler {
	return &Handler{buildInfo: buildInfo}
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 버전, Git 커밋 해시, 빌드 날짜, 빌드 번호, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   h.buildInfo.GoVersion,
	})
}
