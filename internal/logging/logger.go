// Package logging provides structured JSON logging for the batch record processor.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Severity levels recognized by Log. Calls with any other level are dropped.
const (
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
	LevelDebug   = "DEBUG"
)

// Logger emits one JSON object per call: a UTC timestamp, the message, and
// any context fields. It is an explicit instance constructed once at startup
// and passed by reference; there is no package-level global.
type Logger struct {
	zl *zap.Logger
}

// New builds a logger at the given level. In Lambda it writes JSON lines to
// stdout/stderr for the log collector; locally it uses zap's development
// config for readable console output.
func New(level string) (*Logger, error) {
	// Check if we're running in Lambda
	isLambda := os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""

	var cfg zap.Config
	if isLambda {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig = encoderConfig()
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{zl: zl}, nil
}

// NewWithSink builds a JSON logger writing to w. Tests use it to capture
// output instead of reconfiguring a shared logger.
func NewWithSink(w io.Writer, level string) *Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.AddSync(w),
		parseLevel(level),
	)
	return &Logger{zl: zap.New(core)}
}

// Log emits msg with fields through the channel matching level. Unknown
// levels emit nothing.
func (l *Logger) Log(level, msg string, fields ...Field) {
	switch level {
	case LevelInfo:
		l.zl.Info(msg, fields...)
	case LevelWarning:
		l.zl.Warn(msg, fields...)
	case LevelError:
		l.zl.Error(msg, fields...)
	case LevelDebug:
		l.zl.Debug(msg, fields...)
	}
}

// Info logs at INFO level.
func (l *Logger) Info(msg string, fields ...Field) {
	l.Log(LevelInfo, msg, fields...)
}

// Warning logs at WARNING level.
func (l *Logger) Warning(msg string, fields ...Field) {
	l.Log(LevelWarning, msg, fields...)
}

// Error logs at ERROR level.
func (l *Logger) Error(msg string, fields ...Field) {
	l.Log(LevelError, msg, fields...)
}

// Debug logs at DEBUG level.
func (l *Logger) Debug(msg string, fields ...Field) {
	l.Log(LevelDebug, msg, fields...)
}

// With returns a child logger carrying fields on every entry.
func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{zl: l.zl.With(fields...)}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() {
	_ = l.zl.Sync()
}

// parseLevel maps a config level string to a zap level.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// encoderConfig emits "timestamp" and "message" keys with UTC timestamps.
func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.MessageKey = "message"
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000000Z07:00"))
	}
	return cfg
}

// Field is a structured log field.
type Field = zap.Field

// Common field constructors
var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Float64  = zap.Float64
	Bool     = zap.Bool
	Error    = zap.Error
	Any      = zap.Any
	Duration = zap.Duration
	Stack    = zap.Stack
)
