// Package logger configures the process-wide slog logger
package logger

import (
	"io"
	"log/slog"

	"github.com/fatih/color"

	"github.com/napolitain/cookie-checker/internal/models"
)

var levelColors = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.FgMagenta),
	slog.LevelInfo:  color.New(color.FgGreen),
	slog.LevelWarn:  color.New(color.FgYellow),
	slog.LevelError: color.New(color.FgRed, color.Bold),
}

// New builds a logger writing to w. Text output colours the level when
// colour is enabled for the terminal.
func New(cfg models.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) > 0 || a.Key != slog.LevelKey {
			return a
		}
		level, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}
		if c, ok := levelColors[level]; ok {
			a.Value = slog.StringValue(c.Sprint(level.String()))
		}
		return a
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup installs the logger as the slog default and returns it
func Setup(cfg models.LogConfig, w io.Writer) *slog.Logger {
	l := New(cfg, w)
	slog.SetDefault(l)
	return l
}
