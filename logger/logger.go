package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global atomic.Pointer[zap.Logger]

func init() {
	global.Store(zap.NewNop())
}

// Init builds the process logger. level is a zap level name ("debug",
// "info", ...); dev switches to the console encoder with caller and stack.
func Init(level string, dev bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	if dev {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	Set(l)
	return l, nil
}

// Set replaces the process logger, mostly for tests.
func Set(l *zap.Logger) {
	global.Store(l)
	zap.ReplaceGlobals(l)
}

// L returns the process logger; a no-op logger until Init runs.
func L() *zap.Logger {
	return global.Load()
}
