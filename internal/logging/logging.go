// Package logging holds the process wide slog logger. The CLI configures it
// once from settings; everything else reaches it through L.
package logging

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
)

type Options struct {
	Level string
	JSON  bool
}

var def atomic.Value

func init() {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	def.Store(slog.New(h))
}

func Configure(opts Options) {
	cfg := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(os.Stderr, cfg)
	} else {
		h = slog.NewTextHandler(os.Stderr, cfg)
	}
	def.Store(slog.New(h))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// L returns the current process logger.
func L() *slog.Logger {
	l, _ := def.Load().(*slog.Logger)
	return l
}

// With returns the current logger with extra attributes attached.
func With(args ...any) *slog.Logger {
	return L().With(args...)
}

// InitFromEnv configures the logger from PIPEMETA_LOG_LEVEL and
// PIPEMETA_LOG_JSON, for callers that never load settings.
func InitFromEnv() {
	json := false
	if b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("PIPEMETA_LOG_JSON"))); err == nil {
		json = b
	}
	Configure(Options{Level: os.Getenv("PIPEMETA_LOG_LEVEL"), JSON: json})
}
