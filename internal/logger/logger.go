// Package logger writes forest's debug log. It never writes to stdout, which
// is reserved for command output.
//
// The log file is opened on first use at Path(). Debug records are dropped
// unless SetDebug(true) is called.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu    sync.Mutex
	level = new(slog.LevelVar)
	base  *slog.Logger
	file  *os.File
)

// Path is the log file: $FOREST_LOG, or forest-debug.log in the temp dir.
func Path() string {
	if p := os.Getenv("FOREST_LOG"); p != "" {
		return p
	}
	return filepath.Join(os.TempDir(), "forest-debug.log")
}

func SetDebug(enabled bool) {
	if enabled {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// InitWriter sends log records to w instead of the log file.
func InitWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base = newLogger(w)
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// current returns the logger, opening the log file if needed. mu must be held.
func current() *slog.Logger {
	if base != nil {
		return base
	}
	f, err := os.OpenFile(Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		base = newLogger(io.Discard)
		return base
	}
	file = f
	base = newLogger(f)
	return base
}

func logf(lvl slog.Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	l := current()
	if !l.Enabled(context.Background(), lvl) {
		return
	}
	l.Log(context.Background(), lvl, fmt.Sprintf(format, args...))
}

func Debug(format string, args ...any) { logf(slog.LevelDebug, format, args...) }

func Warn(format string, args ...any) { logf(slog.LevelWarn, format, args...) }

// Close flushes and closes the log file. The next record reopens it.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	base = nil
}

// Reset closes the log and restores the default level.
func Reset() {
	Close()
	SetDebug(false)
}

// ComponentLogger returns a structured logger tagged with component, for
// packages that log key/value pairs:
//
//	log := logger.ComponentLogger("git")
//	log.Debug("cmd ok", "args", args, "dur", elapsed)
func ComponentLogger(component string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return current().With(slog.String("component", component))
}
