// Package testutil 테스트에서 공통으로 사용하는 네트워크 및 TLS 헬퍼를 제공합니다.
package testutil

import (
	"fmt"
	"net"
	"testing"
	"time"
)

// FreePort 현재 사용 가능한 TCP 포트를 반환합니다.
func FreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("사용 가능한 포트를 찾을 수 없습니다: %v", err)
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// WaitForPort port가 연결을 받을 때까지 timeout 동안 기다립니다.
func WaitForPort(port int, timeout time.Duration) error {
	address := fmt.Sprintf("127.0.0.1:%d", port)
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", address, 100*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}

	return fmt.Errorf("port %d did not accept connections within %v", port, timeout)
}
