// Package logger decouples the collectors from a concrete logging sink.
// The dashboard owns the terminal, so nothing may write to stdout while the
// UI runs; the default logger is a no-op and SYSDASH_DEBUG=<path> redirects
// debug output to a file.
package logger

import (
	"fmt"
	"log"
	"os"
)

// Logger is the minimal surface the collectors need.
type Logger interface {
	Debug(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger { return noopLogger{} }

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Warn(string, ...interface{})  {}

type fileLogger struct {
	prefix string
	l      *log.Logger
}

// FromEnv returns a file logger when SYSDASH_DEBUG names a writable path,
// otherwise the no-op logger. The prefix tags the owning subsystem.
func FromEnv(prefix string) Logger {
	path := os.Getenv("SYSDASH_DEBUG")
	if path == "" {
		return Noop()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return Noop()
	}
	return &fileLogger{prefix: prefix, l: log.New(f, "", log.LstdFlags)}
}

func (f *fileLogger) Debug(format string, args ...interface{}) {
	f.l.Printf("%s %s", f.prefix, fmt.Sprintf(format, args...))
}

func (f *fileLogger) Warn(format string, args ...interface{}) {
	f.l.Printf("%s WARN: %s", f.prefix, fmt.Sprintf(format, args...))
}

// Buffer captures messages for test assertions.
type Buffer struct {
	Messages []string
}

func (b *Buffer) Debug(format string, args ...interface{}) {
	b.Messages = append(b.Messages, fmt.Sprintf(format, args...))
}

func (b *Buffer) Warn(format string, args ...interface{}) {
	b.Messages = append(b.Messages, "WARN: "+fmt.Sprintf(format, args...))
}
