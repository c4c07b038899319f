// ABOUTME: Leveled diagnostic logging for the switch-audio tools.
// ABOUTME: Printf-style helpers over a log/slog text handler on stderr.

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	logger = newLogger(os.Stderr, slog.LevelWarn)
)

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Init directs log output to w. Debug messages are emitted only when verbose is set.
func Init(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w, level)
}

func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Debug logs a debug message
func Debug(format string, args ...any) {
	current().Debug(fmt.Sprintf(format, args...))
}

// Info logs an informational message
func Info(format string, args ...any) {
	current().Info(fmt.Sprintf(format, args...))
}

// Warn logs a warning
func Warn(format string, args ...any) {
	current().Warn(fmt.Sprintf(format, args...))
}

// Error logs an error
func Error(format string, args ...any) {
	current().Error(fmt.Sprintf(format, args...))
}
