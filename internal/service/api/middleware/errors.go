package middleware

import (
	apperrors "github.com/darkkaiser/fastnext-orchestrator/internal/pkg/errors"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/constants"
	"github.com/darkkaiser/fastnext-orchestrator/internal/service/api/httputil"
)

// ErrRateLimitExceeded 허용된 요청 빈도를 초과한 클라이언트에게 반환하는 429 에러입니다.
var ErrRateLimitExceeded = httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)

// newPanicError 복구된 패닉 값을 Internal 타입 에러로 변환합니다.
func newPanicError(r any) error {
	if err, ok := r.(error); ok {
		return apperrors.Wrap(err, apperrors.Internal, "핸들러 실행 중 패닉이 발생했습니다")
	}
	return apperrors.Newf(apperrors.Internal, "핸들러 실행 중 패닉이 발생했습니다: %v", r)
}
