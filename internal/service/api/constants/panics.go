package constants

// 잘못된 초기화 인자로 인한 패닉 메시지입니다.
const (
	PanicMsgAppConfigRequired = "AppConfig는 필수입니다"
	PanicMsgMetricsRequired   = "Metrics는 필수입니다"

	PanicMsgRateLimitRequestsPerSecondInvalid = "RateLimiting: requestsPerSecond는 양수여야 합니다 (현재값: %d)"
	PanicMsgRateLimitBurstInvalid             = "RateLimiting: burst는 양수여야 합니다 (현재값: %d)"
)

// PanicMsgStatusEncodeFailed 상태 응답 직렬화 실패 패닉 메시지
const PanicMsgStatusEncodeFailed = "상태 응답을 JSON으로 직렬화할 수 없습니다: %v"
