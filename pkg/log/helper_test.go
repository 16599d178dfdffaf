package log

import (
	"bytes"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// resetGlobalState 테스트 간 독립성을 위해 Setup 싱글톤과 logrus 전역 상태를 초기화합니다.
func resetGlobalState() {
	setupOnce = sync.Once{}
	globalCloser = nil
	globalSetupErr = nil

	logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetReportCaller(false)
	logrus.SetFormatter(&logrus.TextFormatter{})
}

// safeBuffer 동시 Fire 호출에서도 안전한 bytes.Buffer입니다.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
