package validation

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Wildcard 모든 출처를 허용하는 CORS 값입니다.
const Wildcard = "*"

// ValidateCORSOrigin origin이 와일드카드('*') 또는 'Scheme://Host[:Port]' 형식인지 검증합니다.
//
// 스키마는 http, https만 허용하며 경로, 후행 슬래시, 쿼리, 프래그먼트, 사용자 정보를 포함할 수 없습니다.
func ValidateCORSOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	if origin == Wildcard {
		return nil
	}
	if origin == "" {
		return fmt.Errorf("CORS Origin은 비어있을 수 없습니다")
	}
	if strings.HasSuffix(origin, "/") {
		return fmt.Errorf("CORS Origin은 '/'로 끝날 수 없습니다 (input=%q)", origin)
	}

	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("CORS Origin 파싱 실패 (input=%q): %w", origin, err)
	}

	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("CORS Origin 스키마는 'http' 또는 'https'만 허용됩니다 (input=%q)", origin)
	case u.Path != "":
		return fmt.Errorf("CORS Origin은 경로를 포함할 수 없습니다 (input=%q)", origin)
	case u.RawQuery != "" || u.ForceQuery:
		return fmt.Errorf("CORS Origin은 쿼리 파라미터를 포함할 수 없습니다 (input=%q)", origin)
	case u.Fragment != "":
		return fmt.Errorf("CORS Origin은 Fragment(#)를 포함할 수 없습니다 (input=%q)", origin)
	case u.User != nil:
		return fmt.Errorf("CORS Origin은 사용자 자격 증명을 포함할 수 없습니다 (input=%q)", origin)
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("CORS Origin 포트 번호가 유효하지 않습니다 (input=%q)", origin)
		}
		if err := ValidatePort(port); err != nil {
			return fmt.Errorf("CORS Origin 포트 오류 (input=%q): %w", origin, err)
		}
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("CORS Origin에 호스트가 없습니다 (input=%q)", origin)
	}

	return ValidateHostname(host)
}

// ValidatePort 포트 번호가 1-65535 범위인지 검증합니다.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("유효한 포트 범위(1-65535)가 아닙니다 (port=%d)", port)
	}
	return nil
}

// ValidateHostname localhost, IP 주소, 또는 RFC 1123 호스트명인지 검증합니다.
func ValidateHostname(host string) error {
	if host == "localhost" || net.ParseIP(host) != nil {
		return nil
	}

	if len(host) > 253 {
		return fmt.Errorf("호스트명은 253자를 초과할 수 없습니다 (len=%d)", len(host))
	}

	labels := strings.Split(host, ".")
	for _, label := range labels {
		if label == "" || len(label) > 63 {
			return fmt.Errorf("호스트명 레이블 길이는 1-63자여야 합니다 (host=%q)", host)
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fmt.Errorf("레이블은 하이픈(-)으로 시작하거나 끝날 수 없습니다 (label=%q)", label)
		}
		for _, r := range label {
			if !isAlnum(r) && r != '-' {
				return fmt.Errorf("호스트명은 영문, 숫자, 하이픈(-)으로만 구성되어야 합니다 (host=%q)", host)
			}
		}
	}

	// TLD는 숫자로만 구성될 수 없다.
	tld := labels[len(labels)-1]
	if strings.Trim(tld, "0123456789") == "" {
		return fmt.Errorf("최상위 도메인(TLD)은 숫자로만 구성될 수 없습니다 (tld=%q)", tld)
	}

	return nil
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
