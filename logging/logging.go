// Package logging is the structured logging surface used across cryptokit.
// Secrets are never logged: use Redacted to mark an elided value, and the
// handlers built here replace any byte slice value with its length.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

const redacted = "[redacted]"

// Logger is the subset of slog cryptokit logs through. Applications can
// supply their own implementation.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New returns a Logger over l; nil binds to slog.Default().
func New(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return logger{l}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return logger{slog.New(slog.DiscardHandler)}
}

// NewText returns a Logger writing slog text records to w at level.
func NewText(w io.Writer, level slog.Level) Logger {
	return New(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: scrub,
	})))
}

// scrub replaces byte slice values, which may hold key material, with
// their length.
func scrub(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindAny {
		return a
	}
	if b, ok := a.Value.Any().([]byte); ok {
		return slog.String(a.Key, fmt.Sprintf("%s %d bytes", redacted, len(b)))
	}
	return a
}

type logger struct {
	l *slog.Logger
}

func (x logger) Debug(ctx context.Context, msg string, args ...any) {
	x.l.Log(ctx, slog.LevelDebug, msg, args...)
}

func (x logger) Info(ctx context.Context, msg string, args ...any) {
	x.l.Log(ctx, slog.LevelInfo, msg, args...)
}

func (x logger) Warn(ctx context.Context, msg string, args ...any) {
	x.l.Log(ctx, slog.LevelWarn, msg, args...)
}

func (x logger) Error(ctx context.Context, msg string, args ...any) {
	x.l.Log(ctx, slog.LevelError, msg, args...)
}

func (x logger) With(args ...any) Logger {
	return logger{x.l.With(args...)}
}

// Redacted is an attribute standing in for a value that must not be logged.
func Redacted(key string) slog.Attr {
	return slog.String(key, redacted)
}

// ParseLevel maps "debug", "info", "warn" and "error" to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(s))
	return l, err
}
