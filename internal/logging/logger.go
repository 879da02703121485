// Package logging builds the structured loggers handed to the components
// that emit diagnostics. There is no package-level logger; each invocation
// constructs one and passes it down.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New builds a logger writing to w at the named level. Unknown level names
// fall back to info.
func New(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})
	return slog.New(handler)
}
