package middleware

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/constants"
	applog "github.com/darkkaiser/fastnext-orchestrator/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitConfig RateLimitingWithConfig 설정
type RateLimitConfig struct {
	// Skipper true를 반환한 요청에는 제한을 적용하지 않습니다.
	Skipper middleware.Skipper

	// RequestsPerSecond IP별 초당 허용 요청 수
	RequestsPerSecond int

	// Burst IP별 순간 허용 요청 수
	Burst int

	// IdleTTL 이 시간 동안 요청이 없던 IP의 토큰 버킷은 제거됩니다. (기본값: 3분)
	IdleTTL time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // UnixNano
}

// ipRateLimiter IP 주소별 토큰 버킷을 관리합니다.
//
// 새 IP가 등록될 때 sweepInterval마다 한 번씩 idleTTL 동안 사용되지 않은 항목을 제거합니다.
type ipRateLimiter struct {
	mu        sync.RWMutex
	limiters  map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time

	now func() time.Time
}

func newIPRateLimiter(requestsPerSecond, burst int, idleTTL time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		limiters:  make(map[string]*limiterEntry),
		rate:      rate.Limit(requestsPerSecond),
		burst:     burst,
		idleTTL:   idleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	now := i.now()

	i.mu.RLock()
	entry, exists := i.limiters[ip]
	i.mu.RUnlock()
	if exists {
		entry.lastSeen.Store(now.UnixNano())
		return entry.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if entry, exists = i.limiters[ip]; exists {
		entry.lastSeen.Store(now.UnixNano())
		return entry.limiter
	}

	if now.Sub(i.lastSweep) >= i.idleTTL/constants.RateLimiterSweepsPerTTL {
		i.sweep(now)
	}

	entry = &limiterEntry{limiter: rate.NewLimiter(i.rate, i.burst)}
	entry.lastSeen.Store(now.UnixNano())
	i.limiters[ip] = entry

	return entry.limiter
}

// sweep mu를 잡은 상태에서 호출해야 합니다.
func (i *ipRateLimiter) sweep(now time.Time) {
	cutoff := now.Add(-i.idleTTL).UnixNano()
	for ip, entry := range i.limiters {
		if entry.lastSeen.Load() < cutoff {
			delete(i.limiters, ip)
		}
	}
	i.lastSweep = now
}

func (i *ipRateLimiter) size() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.limiters)
}

// RateLimiting 클라이언트 IP마다 초당 requestsPerSecond개, 최대 burst개까지 요청을 허용하는 미들웨어를 반환합니다.
// 한도를 넘으면 Retry-After 헤더와 함께 429를 반환합니다.
//
// requestsPerSecond나 burst가 0 이하이면 패닉이 발생합니다.
func RateLimiting(requestsPerSecond, burst int) echo.MiddlewareFunc {
	return RateLimitingWithConfig(RateLimitConfig{
		RequestsPerSecond: requestsPerSecond,
		Burst:             burst,
	})
}

// RateLimitingWithConfig 설정으로 RateLimiting 미들웨어를 생성합니다.
//
// IP는 c.RealIP()로 구하므로 Echo 인스턴스의 IPExtractor가 신뢰할 수 있는 값을 돌려주도록 설정되어 있어야 합니다.
func RateLimitingWithConfig(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.RequestsPerSecond <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitRequestsPerSecondInvalid, cfg.RequestsPerSecond))
	}
	if cfg.Burst <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitBurstInvalid, cfg.Burst))
	}
	if cfg.Skipper == nil {
		cfg.Skipper = middleware.DefaultSkipper
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = constants.DefaultRateLimiterIdleTTL
	}

	return rateLimiting(cfg, newIPRateLimiter(cfg.RequestsPerSecond, cfg.Burst, cfg.IdleTTL))
}

func rateLimiting(cfg RateLimitConfig, limiter *ipRateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			ip := c.RealIP()

			if !limiter.getLimiter(ip).Allow() {
				applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimit, applog.Fields{
					"remote_ip": ip,
					"method":    c.Request().Method,
					"path":      c.Request().URL.Path,
				}).Warn(constants.LogMsgRateLimitExceeded)

				c.Response().Header().Set(constants.HeaderRetryAfter, constants.RetryAfterSeconds)
				return ErrRateLimitExceeded
			}

			return next(c)
		}
	}
}
