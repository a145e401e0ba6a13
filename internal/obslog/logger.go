// File: internal/obslog/logger.go
// Package obslog provides the framework's structured logger: level-gated,
// key=value structured fields, optional rotating file output. Modeled on
// arkd0ng-go-utils/logging's Logger — the same config-struct-plus-functional-
// options shape, the same timestamp-prefix-plus-kv line format — adapted
// to this repo's server/connection/route vocabulary instead of a generic
// application logger.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package obslog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes level-gated, structured log lines to stdout and,
// optionally, a rotating file.
type Logger struct {
	mu     sync.Mutex
	level  Level
	prefix string
	stdout io.Writer
	file   *lumberjack.Logger
	quiet  bool
}

// Option configures a Logger at construction.
type Option func(*Logger)

// WithLevel sets the minimum level that is emitted.
func WithLevel(level Level) Option {
	return func(l *Logger) { l.level = level }
}

// WithPrefix tags every line with a fixed prefix, e.g. the worker name.
func WithPrefix(prefix string) Option {
	return func(l *Logger) { l.prefix = prefix }
}

// WithFile enables rotating file output alongside stdout.
func WithFile(path string, maxSizeMB, maxBackups, maxAgeDays int) Option {
	return func(l *Logger) {
		_ = os.MkdirAll(filepath.Dir(path), 0o755)
		l.file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
	}
}

// New builds a Logger writing to stdout at INFO level by default.
func New(opts ...Option) *Logger {
	l := &Logger{level: INFO, stdout: os.Stdout}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Disabled returns a Logger that drops every line. Used where a caller
// didn't supply one, so call sites never need a nil check.
func Disabled() *Logger {
	return &Logger{level: ERROR + 1, quiet: true, stdout: io.Discard}
}

func (l *Logger) log(level Level, msg string, kv ...any) {
	if l.quiet || level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := time.Now().Format(time.RFC3339)
	line := fmt.Sprintf("%s [%s] ", ts, level.String())
	if l.prefix != "" {
		line += l.prefix + " "
	}
	line += msg
	for i := 0; i+1 < len(kv); i += 2 {
		line += fmt.Sprintf(" %v=%v", kv[i], kv[i+1])
	}
	line += "\n"

	if l.stdout != nil {
		_, _ = l.stdout.Write([]byte(line))
	}
	if l.file != nil {
		_, _ = l.file.Write([]byte(line))
	}
}

// Debug logs at DEBUG with structured key/value pairs.
func (l *Logger) Debug(msg string, kv ...any) { l.log(DEBUG, msg, kv...) }

// Info logs at INFO with structured key/value pairs.
func (l *Logger) Info(msg string, kv ...any) { l.log(INFO, msg, kv...) }

// Warn logs at WARN with structured key/value pairs.
func (l *Logger) Warn(msg string, kv ...any) { l.log(WARN, msg, kv...) }

// Error logs at ERROR with structured key/value pairs.
func (l *Logger) Error(msg string, kv ...any) { l.log(ERROR, msg, kv...) }

// Close flushes and closes the rotating file writer, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
