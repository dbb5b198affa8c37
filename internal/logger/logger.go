package logger

import (
	"os"

	"github.com/openmotive/carmd-go/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging surface the rest of the application
// depends on, so components can be tested without a real zap logger.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) InfoObj(string, string, interface{})  {}
func (NopLogger) DebugObj(string, string, interface{}) {}
func (NopLogger) WarnObj(string, string, interface{})  {}
func (NopLogger) ErrorObj(string, string, interface{}) {}

// Package-level logger to be used across packages after Init.
var S *zap.SugaredLogger

// Init initializes a zap logger using settings from config. Output goes to
// stderr so CLI commands can print API responses cleanly on stdout.
func Init(cfg *config.Config) (Logger, error) {
	var level zapcore.Level
	switch cfg.LogLevel {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn", "warning":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(zapcore.Lock(os.Stderr)),
		level,
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	S = logger.Sugar()
	return &zapLogger{log: logger}, nil
}

// Close flushes any buffered loggers.
func Close() error {
	if S == nil {
		return nil
	}
	return S.Sync()
}

// zapLogger adapts zap to the Logger interface, logging the given object as
// a single structured field named `key`.
type zapLogger struct {
	log *zap.Logger
}

func (l *zapLogger) InfoObj(msg, key string, obj interface{}) {
	l.log.Info(msg, zap.Any(key, obj))
}

func (l *zapLogger) DebugObj(msg, key string, obj interface{}) {
	l.log.Debug(msg, zap.Any(key, obj))
}

func (l *zapLogger) WarnObj(msg, key string, obj interface{}) {
	l.log.Warn(msg, zap.Any(key, obj))
}

func (l *zapLogger) ErrorObj(msg, key string, obj interface{}) {
	l.log.Error(msg, zap.Any(key, obj))
}
