package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/darkkaiser/fastnext-orchestrator/internal/pkg/errors"
	"github.com/darkkaiser/fastnext-orchestrator/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// newValidator 에러 메시지에 JSON 필드명을 사용하고 커스텀 태그가 등록된 Validator를 생성합니다.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("cors_origin", validateCORSOrigin); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'cors_origin' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

func validateCORSOrigin(fl validator.FieldLevel) bool {
	return validation.ValidateCORSOrigin(fl.Field().String()) == nil
}

// checkStruct 구조체를 검증하고 첫 번째 위반 항목을 사용자 친화적인 에러로 변환합니다.
func checkStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, "설정 유효성 검증에 실패했습니다")
	}

	fe := validationErrors[0]
	// Namespace 예: AppConfig.api.cors.allow_origins[1]
	field := fe.Namespace()
	if idx := strings.Index(field, "."); idx != -1 {
		field = field[idx+1:]
	}

	switch fe.StructField() {
	case "ListenPort":
		return apperrors.Newf(apperrors.InvalidInput, "웹 서버 포트(%s)는 1에서 65535 사이의 값이어야 합니다: '%v'", field, fe.Value())
	case "RequestsPerSecond", "Burst":
		return apperrors.Newf(apperrors.InvalidInput, "요청 속도 제한 값(%s)은 1 이상이어야 합니다: '%v'", field, fe.Value())
	case "TLSCertFile", "TLSKeyFile":
		switch fe.Tag() {
		case "required_if":
			return apperrors.Newf(apperrors.InvalidInput, "TLS 서버 활성화 시 %s는 필수입니다", field)
		case "file":
			return apperrors.Newf(apperrors.InvalidInput, "지정된 TLS 파일(%s)을 찾을 수 없습니다: '%v'", field, fe.Value())
		}
	}

	switch fe.Tag() {
	case "cors_origin":
		return apperrors.Newf(apperrors.InvalidInput, "CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", fe.Value())
	case "min":
		return apperrors.Newf(apperrors.InvalidInput, "%s 목록이 비어있습니다", field)
	case "required":
		return apperrors.Newf(apperrors.InvalidInput, "%s 값은 비어있을 수 없습니다", field)
	}

	return apperrors.Newf(apperrors.InvalidInput, "%s 설정이 올바르지 않습니다 (조건: %s)", field, fe.Tag())
}
