package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level strings accepted by NewLogger.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

type Field = zapcore.Field

var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Bool     = zap.Bool
	Any      = zap.Any
	Error    = zap.Error
	Duration = zap.Duration
)

// LoggerI ...
type LoggerI interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Panic(msg string, fields ...Field)
}

type loggerImpl struct {
	zap *zap.Logger
}

// NewLogger builds a named zap logger with the given minimum level.
func NewLogger(namespace, level string) LoggerI {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}

	return &loggerImpl{zap: logger.Named(namespace)}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *loggerImpl) Debug(msg string, fields ...Field) { l.zap.Debug(msg, fields...) }
func (l *loggerImpl) Info(msg string, fields ...Field)  { l.zap.Info(msg, fields...) }
func (l *loggerImpl) Warn(msg string, fields ...Field)  { l.zap.Warn(msg, fields...) }
func (l *loggerImpl) Error(msg string, fields ...Field) { l.zap.Error(msg, fields...) }
func (l *loggerImpl) Panic(msg string, fields ...Field) { l.zap.Panic(msg, fields...) }

// Cleanup flushes buffered log entries.
func Cleanup(l LoggerI) error {
	if impl, ok := l.(*loggerImpl); ok {
		return impl.zap.Sync()
	}
	return nil
}
