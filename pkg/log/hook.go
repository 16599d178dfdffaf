package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// hook 로그 레벨에 따라 하나의 로그 이벤트를 여러 Writer로 분배합니다.
//
// 라우팅 규칙:
//   - console: 모든 레벨
//   - critical: ERROR, FATAL, PANIC
//   - verbose: DEBUG, TRACE (설정된 경우 main에는 기록하지 않음)
//   - main: INFO 이상, verbose가 없으면 모든 레벨
type hook struct {
	mainWriter     io.Writer
	criticalWriter io.Writer
	verboseWriter  io.Writer
	consoleWriter  io.Writer

	formatter Formatter

	mu     sync.RWMutex
	closed bool
}

// Levels 모든 레벨을 수신합니다.
func (h *hook) Levels() []Level {
	return AllLevels
}

// Fire 로그 이벤트를 한 번 포맷팅한 뒤 라우팅 규칙에 따라 기록합니다.
// 여러 Writer 중 하나가 실패해도 나머지에는 계속 기록하며, 최초의 에러를 반환합니다.
func (h *hook) Fire(entry *Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil
	}

	msg, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	if h.consoleWriter != nil {
		// 콘솔 출력 실패는 파일 기록에 영향을 주지 않는다.
		if _, err := h.consoleWriter.Write(msg); err != nil {
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-WARN] 콘솔 출력 실패: %v\n", err)
		}
	}

	var firstErr error
	write := func(w io.Writer, name string) {
		if w == nil {
			return
		}
		if _, err := w.Write(msg); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-FAILURE] %s 로그 파일 쓰기 실패: %v\n", name, err)
		}
	}

	if entry.Level <= ErrorLevel {
		write(h.criticalWriter, "critical")
	}

	if entry.Level >= DebugLevel && h.verboseWriter != nil {
		write(h.verboseWriter, "verbose")
		return firstErr
	}

	write(h.mainWriter, "main")

	return firstErr
}

// Close 이후의 모든 기록 요청을 무시하도록 전환합니다.
// 진행 중인 Fire 호출이 끝날 때까지 대기합니다.
func (h *hook) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	return nil
}
