// Package logging configures colored structured logging with tint.
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures colored logging on stderr at the level specified by the
// LOG_LEVEL env var (default: INFO).
func Setup() *slog.Logger {
	return SetupWithLevel(os.Stderr, LevelFromEnv())
}

// SetupWithLevel configures colored logging at the given level and makes it
// the slog default.
func SetupWithLevel(w io.Writer, level slog.Level) *slog.Logger {
	l := New(w, level)
	slog.SetDefault(l)
	return l
}

// New returns a tint logger without touching the slog default.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}))
}

// LevelFromEnv reads LOG_LEVEL.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv("LOG_LEVEL"))
}

// ParseLevel maps a level name to a slog level; unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// Printf adapts a slog logger to the printf-style Logger used by the
// calculation engine.
type Printf struct {
	L *slog.Logger
}

// NewPrintf wraps l; nil selects the slog default.
func NewPrintf(l *slog.Logger) Printf {
	if l == nil {
		l = slog.Default()
	}
	return Printf{L: l}
}

func (p Printf) Debugf(format string, args ...any) { p.L.Debug(fmt.Sprintf(format, args...)) }
func (p Printf) Infof(format string, args ...any)  { p.L.Info(fmt.Sprintf(format, args...)) }
func (p Printf) Warnf(format string, args ...any)  { p.L.Warn(fmt.Sprintf(format, args...)) }
func (p Printf) Errorf(format string, args ...any) { p.L.Error(fmt.Sprintf(format, args...)) }
