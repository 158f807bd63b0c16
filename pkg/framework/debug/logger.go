// Package debug provides logging and diagnostics for the tone filter host.
package debug

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
	// LogLevelOff disables all logging.
	LogLevelOff
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name (debug, info, warn, error, off) to a LogLevel.
func ParseLevel(name string) (LogLevel, bool) {
	switch name {
	case "debug", "DEBUG":
		return LogLevelDebug, true
	case "info", "INFO":
		return LogLevelInfo, true
	case "warn", "WARN":
		return LogLevelWarn, true
	case "error", "ERROR":
		return LogLevelError, true
	case "off", "OFF":
		return LogLevelOff, true
	}
	return LogLevelInfo, false
}

// levelOff sits above every slog level so nothing passes the handler.
const levelOff = slog.Level(1 << 10)

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return levelOff
	}
}

// Logger is a levelled key-value logger backed by log/slog.
// It must never be called from the audio callback.
type Logger struct {
	mu     sync.Mutex
	level  slog.LevelVar
	prefix string
	slog   *slog.Logger
}

var defaultLogger = New(os.Stderr, "tonefilter")

// New creates a logger writing text records to output. A non-empty prefix is
// attached to every record as the component attribute.
func New(output io.Writer, prefix string) *Logger {
	l := &Logger{prefix: prefix}
	l.level.Set(slog.LevelInfo)
	l.SetOutput(output)
	return l
}

// SetOutput redirects the logger to w.
func (l *Logger) SetOutput(w io.Writer) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: &l.level})
	sl := slog.New(h)
	if l.prefix != "" {
		sl = sl.With("component", l.prefix)
	}

	l.mu.Lock()
	l.slog = sl
	l.mu.Unlock()
}

// SetLevel sets the minimum level that is written.
func (l *Logger) SetLevel(level LogLevel) {
	l.level.Set(level.slogLevel())
}

// Enabled reports whether records at level would be written.
func (l *Logger) Enabled(level LogLevel) bool {
	return level != LogLevelOff && level.slogLevel() >= l.level.Level()
}

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	child := &Logger{prefix: l.prefix}
	child.level.Set(l.level.Level())
	child.slog = l.handle().With(args...)
	return child
}

// Slog exposes the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.handle()
}

func (l *Logger) handle() *slog.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.slog
}

// Debug logs msg with key-value pairs at debug level.
func (l *Logger) Debug(msg string, args ...any) {
	l.handle().Debug(msg, args...)
}

// Info logs msg with key-value pairs at info level.
func (l *Logger) Info(msg string, args ...any) {
	l.handle().Info(msg, args...)
}

// Warn logs msg with key-value pairs at warn level.
func (l *Logger) Warn(msg string, args ...any) {
	l.handle().Warn(msg, args...)
}

// Error logs msg with key-value pairs at error level.
func (l *Logger) Error(msg string, args ...any) {
	l.handle().Error(msg, args...)
}

// Global logger functions

// Default returns the package logger.
func Default() *Logger {
	return defaultLogger
}

// SetOutput sets the output writer for the default logger.
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// SetLevel sets the log level for the default logger.
func SetLevel(level LogLevel) {
	defaultLogger.SetLevel(level)
}

// Debug logs a debug message using the default logger.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an info message using the default logger.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message using the default logger.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message using the default logger.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// WarnIf logs a warning only if condition is true.
func WarnIf(condition bool, msg string, args ...any) {
	if condition {
		defaultLogger.Warn(msg, args...)
	}
}
