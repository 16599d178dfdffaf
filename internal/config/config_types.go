package config

import (
	"fmt"
	"slices"

	apperrors "github.com/darkkaiser/fastnext-orchestrator/internal/pkg/errors"
	"github.com/darkkaiser/fastnext-orchestrator/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// AppConfig 애플리케이션의 모든 설정을 포함하는 최상위 구조체
type AppConfig struct {
	Debug  bool         `json:"debug"`
	API    APIConfig    `json:"api"`
	Status StatusConfig `json:"status"`
}

func (c *AppConfig) validate(v *validator.Validate) error {
	if err := c.API.CORS.validate(); err != nil {
		return err
	}
	return checkStruct(v, c)
}

// VerifyRecommendations 실행을 막지는 않지만 운영 환경에서 주의가 필요한 설정에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.API.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.API.ListenPort))
	}
	if c.API.CORS.IsWildcard() {
		warnings = append(warnings, "CORS 정책이 모든 출처(*)를 허용합니다. 운영 환경에서는 allow_origins에 허용할 출처를 명시하는 것을 권장합니다")
	}

	return warnings
}

// APIConfig HTTP 서버 설정
type APIConfig struct {
	ListenPort  int             `json:"listen_port" validate:"min=1,max=65535"`
	TLSServer   bool            `json:"tls_server"`
	TLSCertFile string          `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile  string          `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
	CORS        CORSConfig      `json:"cors"`
	RateLimit   RateLimitConfig `json:"rate_limit"`
}

// RateLimitConfig 클라이언트 IP별 요청 속도 제한 설정
//
// 활성화해도 상태 엔드포인트(/, /api/health)에는 적용되지 않습니다.
type RateLimitConfig struct {
	Enabled           bool `json:"enabled"`
	RequestsPerSecond int  `json:"requests_per_second" validate:"required_if=Enabled true,omitempty,min=1"`
	Burst             int  `json:"burst" validate:"required_if=Enabled true,omitempty,min=1"`
}

// CORSConfig 교차 출처 리소스 공유(CORS) 정책
//
// 목록이 와일드카드 하나뿐이면 모든 응답에 '*' 헤더를 붙이는 허용 정책이 적용됩니다.
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"min=1,dive,cors_origin"`
	AllowMethods []string `json:"allow_methods" validate:"min=1,dive,required"`
	AllowHeaders []string `json:"allow_headers" validate:"min=1,dive,required"`
}

// IsWildcard 모든 출처를 허용하는 정책인지 여부를 반환합니다.
func (c *CORSConfig) IsWildcard() bool {
	return len(c.AllowOrigins) == 1 && c.AllowOrigins[0] == validation.Wildcard
}

func (c *CORSConfig) validate() error {
	if len(c.AllowOrigins) > 1 && slices.Contains(c.AllowOrigins, validation.Wildcard) {
		return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
	}
	return nil
}

// StatusConfig 상태 엔드포인트가 응답하는 고정 값
type StatusConfig struct {
	Project      string `json:"project" validate:"required"`
	Status       string `json:"status" validate:"required"`
	HealthStatus string `json:"health_status" validate:"required"`
	Version      string `json:"version" validate:"required"`
	Engine       string `json:"engine" validate:"required"`
	Orchestrator string `json:"orchestrator" validate:"required"`
}
