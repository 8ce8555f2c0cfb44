package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StructuredLogger provides ELK-compatible JSON logging on top of zap.
//
// Every entry carries the standard fields @timestamp, level, message and
// logger, plus the service fields set at construction.
type StructuredLogger struct {
	zap   *zap.Logger
	level zap.AtomicLevel
}

// LogLevel represents logging severity levels.
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel converts a config value such as "debug" into a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level: %s", s)
	}
}

// NewStructuredLogger creates a new structured logger writing JSON lines to writer.
func NewStructuredLogger(writer io.Writer, minLevel LogLevel) *StructuredLogger {
	if writer == nil {
		writer = os.Stderr
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "@timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "source",
		MessageKey:     "message",
		StacktraceKey:  "stack_trace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	level := zap.NewAtomicLevelAt(minLevel.zapLevel())
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(writer), level)

	hostname, _ := os.Hostname()
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)).
		Named("travel_assistant").
		With(zap.String("service", "travel-assistant"), zap.String("host", hostname))

	return &StructuredLogger{zap: logger, level: level}
}

// NewNop returns a logger that discards everything.
func NewNop() *StructuredLogger {
	return &StructuredLogger{zap: zap.NewNop(), level: zap.NewAtomicLevelAt(zapcore.FatalLevel)}
}

// Open creates a logger for a config output value: "stdout", "stderr" or a file path.
func Open(output string, minLevel LogLevel) (*StructuredLogger, error) {
	switch output {
	case "", "stderr":
		return NewStructuredLogger(os.Stderr, minLevel), nil
	case "stdout":
		return NewStructuredLogger(os.Stdout, minLevel), nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output: %w", err)
	}
	return NewStructuredLogger(f, minLevel), nil
}

// SetMinLevel sets the minimum log level.
func (l *StructuredLogger) SetMinLevel(level LogLevel) {
	l.level.SetLevel(level.zapLevel())
}

// WithFields returns a logger that adds fields to every entry.
func (l *StructuredLogger) WithFields(fields map[string]interface{}) *StructuredLogger {
	return &StructuredLogger{zap: l.zap.With(toZapFields(fields)...), level: l.level}
}

// Debug logs a debug-level message.
func (l *StructuredLogger) Debug(message string, fields ...map[string]interface{}) {
	l.zap.Debug(message, toZapFields(fields...)...)
}

// Info logs an info-level message.
func (l *StructuredLogger) Info(message string, fields ...map[string]interface{}) {
	l.zap.Info(message, toZapFields(fields...)...)
}

// Warn logs a warning-level message.
func (l *StructuredLogger) Warn(message string, fields ...map[string]interface{}) {
	l.zap.Warn(message, toZapFields(fields...)...)
}

// Error logs an error-level message.
func (l *StructuredLogger) Error(message string, err error, fields ...map[string]interface{}) {
	zf := toZapFields(fields...)
	if err != nil {
		zf = append(zf, zap.Error(err), zap.String("error_type", fmt.Sprintf("%T", err)))
	}
	l.zap.Error(message, zf...)
}

// Sync flushes buffered entries.
func (l *StructuredLogger) Sync() error {
	return l.zap.Sync()
}

// toZapFields flattens field maps; later maps win on duplicate keys.
func toZapFields(fields ...map[string]interface{}) []zap.Field {
	merged := make(map[string]interface{})
	for _, fieldMap := range fields {
		for k, v := range fieldMap {
			merged[k] = v
		}
	}

	out := make([]zap.Field, 0, len(merged))
	for k, v := range merged {
		out = append(out, zap.Any(k, v))
	}
	return out
}
