// Package validation 설정 값 등 외부 입력의 형식을 검증하는 함수를 제공합니다.
//
// 모든 함수는 상태를 가지지 않으므로 여러 고루틴에서 동시에 호출해도 안전합니다.
package validation
