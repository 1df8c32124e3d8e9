package utils

import (
	"strings"

	"go.uber.org/zap"
)

// Logger provides leveled, printf-style logging throughout the application.
type Logger struct {
	sugar *zap.SugaredLogger
}

// NewLogger builds a Logger for the given mode ("prod"/"production" or anything
// else for the colored development encoder). It never fails: if zap cannot be
// configured the returned Logger discards output.
func NewLogger(mode string) *Logger {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	}
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)

	zl, err := cfg.Build()
	if err != nil {
		return NewNopLogger()
	}
	return &Logger{sugar: zl.Sugar()}
}

// NewNopLogger returns a Logger that discards everything. Used by tests.
func NewNopLogger() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

// With returns a child Logger carrying the given key/value pairs.
func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{sugar: l.sugar.With(keysAndValues...)}
}

func (l *Logger) Info(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}
