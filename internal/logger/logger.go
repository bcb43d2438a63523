package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/dusted-go/logging/prettylog"

	"github.com/polkiloo/orderform/internal/config"
)

// New creates a preconfigured slog.Logger. JSON is the default output; "pretty" is meant for local runs.
func New(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	if strings.EqualFold(cfg.LogFormat, "pretty") {
		return slog.New(prettylog.NewHandler(opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
