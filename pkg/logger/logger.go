package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

type Level = logrus.Level

const (
	DEBUG = logrus.DebugLevel
	INFO  = logrus.InfoLevel
	WARN  = logrus.WarnLevel
	ERROR = logrus.ErrorLevel
)

// Logger 对 logrus 的薄封装，保留 printf 风格的调用方式
type Logger struct {
	entry *logrus.Entry
}

var (
	std     *Logger
	stdOnce sync.Once
	mu      sync.RWMutex
)

func newLogger(level string, useColor bool, out io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(parseLevel(level))
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
		ForceColors:     useColor,
		DisableColors:   !useColor,
	})
	return &Logger{entry: logrus.NewEntry(l)}
}

func Init(level string, useColor bool) {
	stdOnce.Do(func() {
		setStd(newLogger(level, useColor, os.Stderr))
	})
}

// InitWithFile 日志写到文件（追加），打开失败时退回 stderr
func InitWithFile(level string, logFile string) {
	stdOnce.Do(func() {
		var out io.Writer = os.Stderr
		if logFile != "" {
			if file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
				out = file
			}
		}
		setStd(newLogger(level, false, out))
	})
}

func setStd(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	std = l
}

func Get() *Logger {
	mu.RLock()
	l := std
	mu.RUnlock()
	if l == nil {
		Init("INFO", true)
		mu.RLock()
		l = std
		mu.RUnlock()
	}
	return l
}

// SetOutput 替换输出（测试用）
func SetOutput(out io.Writer) {
	Get().entry.Logger.SetOutput(out)
}

func SetLevel(level string) {
	Get().entry.Logger.SetLevel(parseLevel(level))
}

func parseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

func Debug(format string, v ...interface{}) { Get().Debug(format, v...) }

func Info(format string, v ...interface{}) { Get().Info(format, v...) }

func Warn(format string, v ...interface{}) { Get().Warn(format, v...) }

func Error(format string, v ...interface{}) { Get().Error(format, v...) }

func (l *Logger) Debug(format string, v ...interface{}) { l.entry.Debugf(format, v...) }

func (l *Logger) Info(format string, v ...interface{}) { l.entry.Infof(format, v...) }

func (l *Logger) Warn(format string, v ...interface{}) { l.entry.Warnf(format, v...) }

func (l *Logger) Error(format string, v ...interface{}) { l.entry.Errorf(format, v...) }

// WithPrefix 返回带固定字段的子 logger，共享级别与输出
func WithPrefix(prefix string) *Logger {
	return &Logger{entry: Get().entry.WithField("component", prefix)}
}
