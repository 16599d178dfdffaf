package constants

import "time"

// HTTP 서버 기본값
const (
	// DefaultReadTimeout 요청 본문까지 읽는 최대 시간
	DefaultReadTimeout = 30 * time.Second

	// DefaultReadHeaderTimeout 요청 헤더를 읽는 최대 시간 (Slowloris 방어)
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout 응답 쓰기 최대 시간
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout Keep-Alive 연결의 최대 유휴 시간
	DefaultIdleTimeout = 120 * time.Second

	// DefaultRequestTimeout 요청 컨텍스트의 처리 제한 시간
	DefaultRequestTimeout = 60 * time.Second

	// DefaultShutdownTimeout Graceful Shutdown 최대 대기 시간
	DefaultShutdownTimeout = 5 * time.Second
)

// 요청 제한 기본값
const (
	// DefaultMaxBodySize 요청 본문의 최대 크기
	DefaultMaxBodySize = "128K"

	// DefaultRateLimiterIdleTTL 이 시간 동안 요청이 없던 IP의 토큰 버킷은 제거됩니다.
	DefaultRateLimiterIdleTTL = 3 * time.Minute

	// RateLimiterSweepsPerTTL IdleTTL 동안 유휴 항목 정리를 수행하는 횟수
	RateLimiterSweepsPerTTL = 3

	// RetryAfterSeconds 429 응답의 Retry-After 값(초)
	RetryAfterSeconds = "1"
)

// SensitiveQueryParams 접근 로그에 기록할 때 마스킹할 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	"api_key",
	"app_key",
	"access_token",
	"password",
	"secret",
	"token",
}

// HeaderRetryAfter 429 응답에 포함되는 재시도 대기 시간 헤더
const HeaderRetryAfter = "Retry-After"
