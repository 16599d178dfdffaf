package errors

import "strconv"

// ErrorType 에러의 종류를 나타냅니다.
type ErrorType int

const (
	// Unknown 분류할 수 없는 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그)
	Internal

	// System 디스크, 네트워크 등 시스템/인프라 오류
	System

	// InvalidInput 입력값 또는 설정값 검증 실패
	InvalidInput

	// NotFound 대상을 찾을 수 없음
	NotFound

	// Unavailable 일시적으로 사용할 수 없음
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:      "Unknown",
	Internal:     "Internal",
	System:       "System",
	InvalidInput: "InvalidInput",
	NotFound:     "NotFound",
	Unavailable:  "Unavailable",
}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
