// Package logger provides the structured logging facade used across the console.
package logger

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Level represents the minimum log level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// TraceIDFn extracts a trace id from the context for log correlation.
type TraceIDFn func(ctx context.Context) string

// LoggerInterface is the logging contract consumed by the rest of the codebase.
// Arguments after the message are alternating key/value pairs.
type LoggerInterface interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
}

// Logger implements LoggerInterface on top of zerolog.
type Logger struct {
	z       zerolog.Logger
	traceFn TraceIDFn
}

// New creates a Logger writing to w at the given minimum level.
// traceFn may be nil; when set, a trace_id field is attached to every event.
func New(w io.Writer, level Level, service string, traceFn TraceIDFn) *Logger {
	zl := zerolog.New(w).
		Level(toZerolog(level)).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	return &Logger{z: zl, traceFn: traceFn}
}

// Debug logs at debug level.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.write(ctx, l.z.Debug(), msg, args)
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.write(ctx, l.z.Info(), msg, args)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.write(ctx, l.z.Warn(), msg, args)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.write(ctx, l.z.Error(), msg, args)
}

func (l *Logger) write(ctx context.Context, ev *zerolog.Event, msg string, args []any) {
	if l.traceFn != nil {
		if id := l.traceFn(ctx); id != "" {
			ev = ev.Str("trace_id", id)
		}
	}

	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", args[i])
		}
		ev = ev.Interface(key, args[i+1])
	}

	// Odd trailing argument gets a placeholder key rather than being dropped.
	if len(args)%2 != 0 {
		ev = ev.Interface("arg", args[len(args)-1])
	}

	ev.Msg(msg)
}

func toZerolog(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
