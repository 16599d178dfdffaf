package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/fastnext-orchestrator/internal/config"
	"github.com/darkkaiser/fastnext-orchestrator/internal/pkg/version"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api"
	applog "github.com/darkkaiser/fastnext-orchestrator/pkg/log"
)

// @title FastNext Orchestrator API
// @version 1.0.0
// @description FastNext Orchestrator의 상태 조회 REST API입니다.
// @description
// @description ## 엔드포인트
// @description - 서비스 상태 (GET /)
// @description - 헬스체크 (GET /api/health)
// @description - 빌드 정보 (GET /version)

// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser

// @license.name MIT

// @BasePath /

const componentMain = "main"

const (
	banner = `
  _____          _   _   _           _
 |  ___|_ _  ___| |_| \ | | _____  _| |_
 | |_ / _' |/ __| __|  \| |/ _ \ \/ / __|
 |  _| (_| |\__ \ |_| |\  |  __/>  <| |_
 |_|  \__,_||___/\__|_| \_|\___/_/\_\\__|
                            Orchestrator %s
--------------------------------------------------------------------------------
`
)

func main() {
	configPath := flag.String("config", "", "설정 파일 경로 (기본값: ./"+config.DefaultFilename+")")
	flag.Parse()

	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load(*configPath)
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	// 3. 로그 레벨 최종 확정
	applog.SetDebugMode(appConfig.Debug)

	buildInfo := version.Get()
	fmt.Printf(banner, buildInfo.Version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appConfig, buildInfo); err != nil {
		applog.WithComponentAndFields(componentMain, applog.Fields{
			"error": err,
		}).Error("서비스 초기화 실패로 프로그램을 종료합니다")

		appLogCloser.Close()
		os.Exit(1)
	}
}

// run 서비스를 시작하고 ctx가 취소될 때까지 대기한 뒤, 모든 서비스가 종료되면 반환합니다.
func run(ctx context.Context, appConfig *config.AppConfig, buildInfo version.Info) error {
	applog.WithComponentAndFields(componentMain, applog.Fields{
		"version": buildInfo.String(),
		"config":  appConfig.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent(componentMain).Warn(warning)
	}

	serviceStopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	serviceStopWG := &sync.WaitGroup{}

	services := []service.Service{api.NewService(appConfig, buildInfo)}
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			cancel() // 다른 서비스들도 종료
			serviceStopWG.Wait()
			return err
		}
	}

	applog.WithComponent(componentMain).Info("서버 가동 완료")

	<-serviceStopCtx.Done()

	applog.WithComponent(componentMain).Info("종료 신호를 수신했습니다")
	serviceStopWG.Wait()

	return nil
}
