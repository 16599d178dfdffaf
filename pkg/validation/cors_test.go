package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCORSOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		origin  string
		wantErr bool
	}{
		{"와일드카드", "*", false},
		{"https 도메인", "https://example.com", false},
		{"http localhost 포트", "http://localhost:3000", false},
		{"IPv4", "http://192.168.1.229:30001", false},
		{"IPv6", "http://[::1]:8080", false},
		{"빈 문자열", "", true},
		{"후행 슬래시", "https://example.com/", true},
		{"경로 포함", "https://example.com/api", true},
		{"쿼리 포함", "https://example.com?x=1", true},
		{"프래그먼트 포함", "https://example.com#top", true},
		{"사용자 정보 포함", "https://user:pw@example.com", true},
		{"지원하지 않는 스키마", "ftp://example.com", true},
		{"스키마 누락", "example.com", true},
		{"포트 범위 초과", "http://example.com:70000", true},
		{"숫자 TLD", "http://example.123", true},
		{"하이픈 시작 레이블", "http://-bad.example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateCORSOrigin(tt.origin)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateHostname(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateHostname("localhost"))
	assert.NoError(t, ValidateHostname("api.fastnext.io"))
	assert.Error(t, ValidateHostname(strings.Repeat("a", 64)+".com"))
	assert.Error(t, ValidateHostname(strings.Repeat("a.", 127)+"com"))
	assert.Error(t, ValidateHostname("under_score.com"))
	assert.Error(t, ValidateHostname("a..b"))
}

func TestValidatePort(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePort(1))
	assert.NoError(t, ValidatePort(8000))
	assert.NoError(t, ValidatePort(65535))
	assert.Error(t, ValidatePort(0))
	assert.Error(t, ValidatePort(65536))
}
