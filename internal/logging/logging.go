// Package logging provides a small leveled logger with per-component
// prefixes.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	levelOff
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseLevel parses a log level string. Unknown strings map to info.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// core is the destination shared by a root logger and everything derived
// from it with With: one lock, one level, one writer.
type core struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
}

// Logger writes timestamped, leveled lines. Loggers derived with With share
// the root's level and destination, so SetLevel/SetOutput on any of them
// affects the whole family.
type Logger struct {
	core   *core
	prefix string
}

// New creates a logger writing to stderr.
func New(level Level) *Logger {
	return &Logger{
		core: &core{level: level, output: os.Stderr},
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{
		core: &core{level: levelOff, output: io.Discard},
	}
}

// With returns a logger that prefixes every line with the component name.
func (l *Logger) With(component string) *Logger {
	return &Logger{
		core:   l.core,
		prefix: component,
	}
}

// SetOutput redirects the log destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	l.core.output = w
}

// SetLevel sets the minimum level that gets written.
func (l *Logger) SetLevel(level Level) {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	l.core.level = level
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()

	if level < l.core.level {
		return
	}

	var line string
	if l.prefix != "" {
		line = fmt.Sprintf("%s [%s] %s: %s\n",
			time.Now().Format("15:04:05.000"), level, l.prefix, fmt.Sprintf(format, args...))
	} else {
		line = fmt.Sprintf("%s [%s] %s\n",
			time.Now().Format("15:04:05.000"), level, fmt.Sprintf(format, args...))
	}

	_, _ = l.core.output.Write([]byte(line))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}
