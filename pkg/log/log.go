// Package log 애플리케이션 전역 로거(logrus)를 감싸 초기화와 구조화 로깅 헬퍼를 제공합니다.
//
// 모든 로그는 component 필드를 가지며, Setup 이후에는 레벨별로 분리된 로테이션 파일에 기록됩니다.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// componentField 로그 발생 위치를 식별하는 필드 키입니다.
const componentField = "component"

// WithComponent component 필드를 포함한 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField(componentField, component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 로그 Entry를 반환합니다.
// 전달된 fields 맵은 수정하지 않습니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged[componentField] = component

	return logrus.WithFields(merged)
}

// WithFields 전역 로거에 필드를 추가한 Entry를 반환합니다.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// StandardLogger 전역 로거 인스턴스를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetOutput 전역 로거의 출력 대상을 변경합니다.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// SetFormatter 전역 로거의 포맷터를 변경합니다.
func SetFormatter(f Formatter) {
	logrus.SetFormatter(f)
}

// SetLevel 전역 로거의 레벨을 변경합니다.
func SetLevel(level Level) {
	logrus.SetLevel(level)
}

// SetDebugMode 디버그 모드이면 Trace, 아니면 Info 레벨로 설정합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}
