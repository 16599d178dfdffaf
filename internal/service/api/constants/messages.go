package constants

// 클라이언트에게 반환되는 에러 메시지입니다.
const (
	ErrMsgBadRequest            = "잘못된 요청입니다"
	ErrMsgNotFound              = "요청한 리소스를 찾을 수 없습니다"
	ErrMsgMethodNotAllowed      = "허용되지 않은 메서드입니다"
	ErrMsgRequestEntityTooLarge = "요청 본문이 너무 큽니다"
	ErrMsgTooManyRequests       = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"
	ErrMsgInternalServer        = "내부 서버 오류가 발생했습니다"
	ErrMsgServiceUnavailable    = "요청 처리 시간이 초과되었습니다. 잠시 후 다시 시도해주세요"
)
