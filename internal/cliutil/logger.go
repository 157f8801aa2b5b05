package cliutil

import (
	"io"
	"log/slog"
)

// NewLogger returns a text logger writing to w. Verbose forces debug
// output and quiet discards everything; otherwise level applies.
func NewLogger(w io.Writer, level slog.Level, verbose, quiet bool) *slog.Logger {
	switch {
	case quiet:
		return slog.New(slog.DiscardHandler)
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
