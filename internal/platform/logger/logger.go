package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Text output keeps local
// development readable; hosts embedding the client can pass their own
// slog.Logger instead.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// Discard returns a logger that drops everything, for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
