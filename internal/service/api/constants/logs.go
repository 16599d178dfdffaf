package constants

// 내부 로깅 메시지입니다.
const (
	LogMsgServiceStarting       = "API 서비스 시작중..."
	LogMsgServiceStarted        = "API 서비스 시작됨"
	LogMsgServiceAlreadyStarted = "API 서비스가 이미 시작됨!!!"
	LogMsgServiceStopping       = "API 서비스 중지중..."
	LogMsgServiceStopped        = "API 서비스 중지됨"
	LogMsgServiceUnexpectedExit = "API 서비스가 예기치 않게 종료되었습니다"

	LogMsgHTTPServerStarting      = "API 서비스 > http 서버 시작"
	LogMsgHTTPServerStopped       = "API 서비스 > http 서버 중지됨"
	LogMsgHTTPServerShutdownError = "API 서비스 > http 서버 종료 중 오류 발생"
	LogMsgHTTPServerFatalError    = "API 서비스 > http 서버를 구동하는 중에 치명적인 오류가 발생하였습니다"

	LogMsgHTTPRequest        = "HTTP 요청"
	LogMsgHTTP4xxClientError = "HTTP 4xx: 클라이언트 요청 오류"
	LogMsgHTTP5xxServerError = "HTTP 5xx: 서버 내부 오류"
	LogMsgPanicRecovered     = "PANIC 복구됨"
	LogMsgRateLimitExceeded  = "요청 속도 제한 초과"
	LogMsgCORSWildcardPolicy = "CORS 정책: 모든 출처 허용(*)"
	LogMsgCORSOriginPolicy   = "CORS 정책: 허용 출처 제한"

	LogMsgRootStatus   = "루트 상태 조회"
	LogMsgHealthStatus = "헬스체크 조회"
	LogMsgVersionInfo  = "버전 정보 조회"
)
