// Package middleware API 서버에 적용되는 Echo 미들웨어를 제공합니다.
//
//   - PanicRecovery: 핸들러 패닉 복구 및 500 응답
//   - HTTPLogger: 구조화된 접근 로그 (민감한 쿼리 파라미터 마스킹)
//   - RateLimiting: IP 단위 요청 속도 제한
//   - CORS: 교차 출처 리소스 공유 정책
//   - Logger: Echo 내부 로그를 애플리케이션 로거로 연결하는 어댑터
package middleware
