// Package service 애플리케이션을 구성하는 장기 실행 서비스의 공통 계약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service Start로 시작되어 ctx가 취소되면 종료되는 서비스입니다.
//
// Start는 즉시 반환해야 하며, 서비스가 완전히 종료되면 serviceStopWG.Done()을 호출해야 합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
