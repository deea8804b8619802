package showcase

import (
	"io"
	"log/slog"
)

// NewLogger returns a text logger on w. Debug enables per-frame stats from
// the effect sessions.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
