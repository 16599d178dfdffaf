package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	_ "github.com/darkkaiser/fastnext-orchestrator/docs"
	"github.com/darkkaiser/fastnext-orchestrator/internal/config"
	"github.com/darkkaiser/fastnext-orchestrator/internal/pkg/version"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/constants"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/handler/status"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/handler/system"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/metrics"
	appmiddleware "github.com/darkkaiser/fastnext-orchestrator/internal/service/api/middleware"
	applog "github.com/darkkaiser/fastnext-orchestrator/pkg/log"
	"github.com/labstack/echo/v4"
)

// Service API 서버의 생명주기를 관리합니다.
//
// Start로 HTTP(S) 서버를 별도 고루틴에서 구동하고, Start에 전달한 context가 취소되면
// 최대 5초 동안 Graceful Shutdown을 수행합니다.
type Service struct {
	appConfig *config.AppConfig
	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다. appConfig가 nil이면 패닉이 발생합니다.
func NewService(appConfig *config.AppConfig, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}

	return &Service{
		appConfig: appConfig,
		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다.
//
// 즉시 반환하며, 서버가 완전히 종료되면 serviceStopWG.Done()이 호출됩니다.
// 이미 실행 중이면 경고만 남기고 serviceStopWG.Done()을 호출한 뒤 nil을 반환합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

// IsRunning 서비스 실행 여부를 반환합니다.
func (s *Service) IsRunning() bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	return s.running
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer 핸들러, 미들웨어, 라우트가 구성된 Echo 인스턴스를 생성합니다.
func (s *Service) setupServer() *echo.Echo {
	m := metrics.New()

	statusHandler := status.NewHandler(s.appConfig.Status)
	systemHandler := system.NewHandler(s.buildInfo)

	var rateLimit *RateLimitPolicy
	if rl := s.appConfig.API.RateLimit; rl.Enabled {
		rateLimit = &RateLimitPolicy{
			RequestsPerSecond: rl.RequestsPerSecond,
			Burst:             rl.Burst,
		}
	}

	cors := s.appConfig.API.CORS
	e := NewHTTPServer(HTTPServerConfig{
		Debug:      s.appConfig.Debug,
		EnableHSTS: s.appConfig.API.TLSServer,
		CORS: appmiddleware.CORSPolicy{
			AllowOrigins: cors.AllowOrigins,
			AllowMethods: cors.AllowMethods,
			AllowHeaders: cors.AllowHeaders,
		},
		Metrics:   m,
		RateLimit: rateLimit,
	})

	RegisterRoutes(e, statusHandler, systemHandler, m)

	return e
}

// startHTTPServer 서버가 종료될 때까지 블로킹되며, 종료되면 done을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	api := s.appConfig.API
	address := fmt.Sprintf(":%d", api.ListenPort)

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": api.ListenPort,
		"tls":  api.TLSServer,
	}).Info(constants.LogMsgHTTPServerStarting)

	var err error
	if api.TLSServer {
		err = e.StartTLS(address, api.TLSCertFile, api.TLSKeyFile)
	} else {
		err = e.Start(address)
	}

	s.handleServerError(err)
}

func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.API.ListenPort,
		"error": err,
	}).Error(constants.LogMsgHTTPServerFatalError)
}

// waitForShutdown 종료 신호 또는 서버의 조기 종료를 기다린 뒤 상태를 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		// 포트 바인딩 실패 등으로 서버가 먼저 종료된 경우
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)
		s.cleanup()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
