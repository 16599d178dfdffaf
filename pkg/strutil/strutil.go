// Package strutil 문자열 처리 유틸리티를 제공합니다.
package strutil

// Mask 토큰, 키 등 민감한 값을 로그에 남길 수 있도록 일부만 남기고 가립니다.
//
//	""                 -> ""
//	"abc"              -> "***"
//	"secret123"        -> "secr***"
//	"abcdefghijklmnop" -> "abcd***mnop"
func Mask(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 3:
		return "***"
	case len(s) <= 12:
		return s[:4] + "***"
	default:
		return s[:4] + "***" + s[len(s)-4:]
	}
}
