package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	apperrors "github.com/darkkaiser/fastnext-orchestrator/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "fastnext-orchestrator"

	// DefaultFilename 실행 인자로 설정 파일 경로가 주어지지 않았을 때 탐색하는 기본 설정 파일명입니다.
	// 기본 설정 파일은 없어도 되며, 이 경우 기본값과 환경 변수만으로 구성됩니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정을 덮어쓰는 환경 변수의 접두사입니다.
	// 계층은 이중 언더스코어(__)로 구분합니다. 예: FASTNEXT_API__LISTEN_PORT=9000
	EnvPrefix = "FASTNEXT_"
)

// 응답 기본값
const (
	DefaultListenPort   = 8000
	DefaultProject      = "FastNext Orchestrator"
	DefaultStatus       = "Online"
	DefaultHealthStatus = "Healthy"
	DefaultVersion      = "1.0.0"
	DefaultEngine       = "Echo"
	DefaultOrchestrator = "Kubernetes"
)

// 요청 속도 제한 기본값. 제한은 기본적으로 비활성화되어 있습니다.
const (
	DefaultRateLimitRequestsPerSecond = 20
	DefaultRateLimitBurst             = 40
)

// newDefaultConfig 설정 파일과 환경 변수가 모두 없을 때 사용되는 기본 설정을 반환합니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		Debug: false,
		API: APIConfig{
			ListenPort: DefaultListenPort,
			CORS: CORSConfig{
				AllowOrigins: []string{"*"},
				AllowMethods: []string{"*"},
				AllowHeaders: []string{"*"},
			},
			RateLimit: RateLimitConfig{
				Enabled:           false,
				RequestsPerSecond: DefaultRateLimitRequestsPerSecond,
				Burst:             DefaultRateLimitBurst,
			},
		},
		Status: StatusConfig{
			Project:      DefaultProject,
			Status:       DefaultStatus,
			HealthStatus: DefaultHealthStatus,
			Version:      DefaultVersion,
			Engine:       DefaultEngine,
			Orchestrator: DefaultOrchestrator,
		},
	}
}

// Load 설정을 로드합니다.
//
// 우선순위는 기본값 < JSON 설정 파일 < 환경 변수 순이며, 뒤에 로드된 값이 앞의 값을 덮어씁니다.
// path가 비어 있으면 DefaultFilename을 탐색하고, 파일이 없으면 건너뜁니다.
// path를 명시했는데 파일이 없으면 에러를 반환합니다.
func Load(path string) (*AppConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFilename
	}

	k := koanf.New(".")

	// 1. 기본값
	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정 파일 로드 중 오류가 발생했습니다: '%s'", path)
		}
		if explicit {
			return nil, apperrors.Wrapf(err, apperrors.NotFound, "설정 파일을 찾을 수 없습니다: '%s'", path)
		}
	}

	// 3. 환경 변수
	if err := k.Load(env.Provider(EnvPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 변환. 정의되지 않은 키가 있으면 실패한다.
	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           &appConfig,
		},
	}); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정 데이터('%s')를 구조체로 변환하지 못했습니다", path)
	}

	// 5. 유효성 검사
	if err := appConfig.validate(newValidator()); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정('%s')의 유효성 검증에 실패했습니다", path)
	}

	return &appConfig, nil
}

// normalizeEnvKey 환경 변수 이름을 koanf 키 경로로 변환합니다.
//
//	FASTNEXT_API__CORS__ALLOW_ORIGINS -> api.cors.allow_origins
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// String 설정 요약을 반환합니다. 로그 출력용입니다.
func (c *AppConfig) String() string {
	return fmt.Sprintf("debug=%t, listen_port=%d, tls=%t, cors_origins=%v, rate_limit=%t, engine=%s",
		c.Debug, c.API.ListenPort, c.API.TLSServer, c.API.CORS.AllowOrigins, c.API.RateLimit.Enabled, c.Status.Engine)
}
