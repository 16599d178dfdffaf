package constants

// 로그 발생 위치(컴포넌트) 식별을 위한 상수입니다.
const (
	ComponentService                 = "api.service"
	ComponentHandler                 = "api.handler"
	ComponentErrorHandler            = "api.error_handler"
	ComponentMiddlewareAccessLog     = "api.middleware.access_log"
	ComponentMiddlewarePanicRecovery = "api.middleware.panic_recovery"
	ComponentMiddlewareRateLimit     = "api.middleware.rate_limit"
	ComponentMiddlewareCORS          = "api.middleware.cors"
)
