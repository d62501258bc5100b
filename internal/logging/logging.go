// Package logging provides the console-only structured logger shared
// by every package, grounded on
// ghyeongl-selective-filebrowser/sync/logger.go's consoleHandler
// (INFO to stdout, WARN/ERROR to stderr). Unlike that logger this one
// never writes to a file: the "no persisted state" non-goal rules
// out a log directory, so the lumberjack-backed file handlers are not
// carried over (see DESIGN.md).
package logging

import (
	"context"
	"log/slog"
	"os"
)

// Init installs the default process-wide logger. level sets the
// minimum level recorded; verbose diagnostics (e.g. per-file scan
// attribution) should log at slog.LevelDebug so that passing a lower
// level to Init surfaces them without code changes elsewhere.
func Init(level slog.Level) *slog.Logger {
	h := &consoleHandler{
		level:  level,
		stdout: slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
		stderr: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// For returns a child logger tagged with the given component name.
func For(component string) *slog.Logger {
	return slog.Default().With("component", component)
}

// consoleHandler routes INFO and below to stdout, WARN and above to
// stderr, so interactive-mode progress never interleaves with
// diagnostics on the same stream.
type consoleHandler struct {
	level  slog.Level
	stdout slog.Handler
	stderr slog.Handler
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		return h.stderr.Handle(ctx, r)
	}
	return h.stdout.Handle(ctx, r)
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{level: h.level, stdout: h.stdout.WithAttrs(attrs), stderr: h.stderr.WithAttrs(attrs)}
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	return &consoleHandler{level: h.level, stdout: h.stdout.WithGroup(name), stderr: h.stderr.WithGroup(name)}
}
