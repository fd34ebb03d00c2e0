package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// L returns the process-wide logger. Until Init or Set is called it
// discards everything.
func L() *slog.Logger {
	return loggerPtr.Load()
}

// Set replaces the process-wide logger. Passing nil restores the silent default.
func Set(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

var ErrUnknownLevel = errors.New("unknown log level")

var levelNames = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ResolveLogLevel maps a configured level name to its slog level, ignoring
// case and surrounding space.
func ResolveLogLevel(name string) (slog.Level, error) {
	if lvl, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return lvl, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

// Init sends text logs at or above level to stderr.
func Init(level string) error {
	return InitTo(os.Stderr, level)
}

func InitTo(w io.Writer, level string) error {
	lvl, err := ResolveLogLevel(level)
	if err != nil {
		return err
	}
	Set(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
	return nil
}
