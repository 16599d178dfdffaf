package log

import (
	"github.com/sirupsen/logrus"
)

// Level logrus.Level의 별칭입니다.
type Level = logrus.Level

const (
	// PanicLevel 로그를 기록한 뒤 panic()을 호출합니다.
	PanicLevel Level = logrus.PanicLevel

	// FatalLevel 로그를 기록한 뒤 os.Exit(1)로 프로세스를 종료합니다.
	FatalLevel Level = logrus.FatalLevel

	// ErrorLevel 프로세스는 유지되지만 관리자 확인이 필요한 오류입니다.
	ErrorLevel Level = logrus.ErrorLevel

	// WarnLevel 당장 오류는 아니지만 주의가 필요한 상황입니다.
	WarnLevel Level = logrus.WarnLevel

	// InfoLevel 정상적인 운영 흐름을 기록합니다.
	InfoLevel Level = logrus.InfoLevel

	// DebugLevel 개발 및 문제 분석용 상세 정보입니다.
	DebugLevel Level = logrus.DebugLevel

	// TraceLevel Debug 보다 세밀한 추적 정보입니다.
	TraceLevel Level = logrus.TraceLevel
)

// AllLevels logrus.AllLevels의 별칭입니다.
var AllLevels = logrus.AllLevels

// Fields logrus.Fields의 별칭입니다.
type Fields = logrus.Fields

// Entry logrus.Entry의 별칭입니다.
type Entry = logrus.Entry

// Hook logrus.Hook의 별칭입니다.
type Hook = logrus.Hook

// Logger logrus.Logger의 별칭입니다.
type Logger = logrus.Logger

// Formatter logrus.Formatter의 별칭입니다.
type Formatter = logrus.Formatter

// JSONFormatter logrus.JSONFormatter의 별칭입니다.
type JSONFormatter = logrus.JSONFormatter

// TextFormatter logrus.TextFormatter의 별칭입니다.
type TextFormatter = logrus.TextFormatter
