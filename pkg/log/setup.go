package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	fileExt = "log"

	defaultDir        = "logs"
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 20
)

var (
	// setupOnce Setup이 프로세스 생명주기 동안 한 번만 실행되도록 보장합니다.
	setupOnce sync.Once

	// 최초 Setup 결과. 재호출 시 같은 값을 그대로 돌려준다.
	globalCloser   io.Closer
	globalSetupErr error
)

// Setup 전역 로거를 초기화하고 옵션에 따라 로테이션 파일 출력을 구성합니다.
//
// main 함수 도입부에서 한 번 호출하고, 반환된 Closer는 defer로 닫아야 합니다.
// 두 번째 호출부터는 최초 호출의 결과를 그대로 반환합니다.
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = setup(opts)
	})

	return globalCloser, globalSetupErr
}

func setup(opts Options) (io.Closer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("유효하지 않은 로그 설정: %w", err)
	}

	level := opts.Level
	if level == 0 {
		level = InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(opts.ReportCaller)

	dir := opts.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
	}

	newFile := func(suffix string) *lumberjack.Logger {
		name := opts.Name + "." + fileExt
		if suffix != "" {
			name = opts.Name + "." + suffix + "." + fileExt
		}
		return &lumberjack.Logger{
			Filename:   filepath.Join(dir, name),
			MaxSize:    orDefault(opts.MaxSizeMB, defaultMaxSizeMB),
			MaxBackups: orDefault(opts.MaxBackups, defaultMaxBackups),
			MaxAge:     opts.MaxAge,
			LocalTime:  true,
		}
	}

	h := &hook{
		formatter: newTextFormatter(opts.CallerPathPrefix),
	}

	mainLogger := newFile("")
	h.mainWriter = mainLogger
	closers := []io.Closer{mainLogger}

	if opts.EnableCriticalLog {
		criticalLogger := newFile("critical")
		h.criticalWriter = criticalLogger
		closers = append(closers, criticalLogger)
	}
	if opts.EnableVerboseLog {
		verboseLogger := newFile("verbose")
		h.verboseWriter = verboseLogger
		closers = append(closers, verboseLogger)
	}
	if opts.EnableConsoleLog {
		h.consoleWriter = os.Stdout
	}

	// 기본 출력은 버리고 모든 기록을 hook에 위임한다.
	logrus.SetOutput(io.Discard)
	logrus.SetFormatter(&silentFormatter{})
	logrus.AddHook(h)

	c := &closer{
		closers: closers,
		hook:    h,
	}

	// Fatal 로그로 프로세스가 종료되기 직전에 버퍼를 비운다.
	logrus.RegisterExitHandler(func() {
		_ = c.Close()
	})

	return c, nil
}

// newTextFormatter 파일과 콘솔 출력에 공통으로 사용하는 포맷터를 생성합니다.
func newTextFormatter(prefix string) *TextFormatter {
	return &TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			function = frame.Function + "(line:" + strconv.Itoa(frame.Line) + ")"
			if prefix != "" {
				if cut, found := strings.CutPrefix(function, prefix); found {
					function = "..." + cut
				}
			}
			return
		},
	}
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
