// Package logger writes structured logs to a rotated file. The TUI owns the
// terminal, so nothing is ever written to stdout or stderr after startup.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the log file
const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 14
)

// DefaultLogPath is used when Init is never called.
var DefaultLogPath = filepath.Join(os.TempDir(), "askdesk-debug.log")

var (
	mu       sync.Mutex
	once     sync.Once
	root     *slog.Logger
	writer   io.WriteCloser
	logPath  string
	initDone bool
	level    = new(slog.LevelVar)
)

// SetDebug switches between debug and info level. It may be called before
// or after Init.
func SetDebug(enabled bool) {
	if enabled {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// open installs the handler for path. Callers hold mu.
func open(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory for %s: %w", path, err)
	}
	writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
	}
	logPath = path
	root = slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
	initDone = true

	root.Info("Logger initialized", "path", path)
	return nil
}

// Init directs logging to path. Later calls are ignored until Reset.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}
	return open(path)
}

// ensureInit falls back to DefaultLogPath. Callers hold mu.
func ensureInit() {
	if initDone {
		return
	}
	once.Do(func() {
		if err := open(DefaultLogPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to open log file %s: %v\n", DefaultLogPath, err)
		}
	})
}

// Close flushes and closes the log file. Loggers handed out earlier keep
// working but write nowhere.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if writer != nil {
		writer.Close()
		writer = nil
	}
	root = nil
}

// Reset closes the log and forgets all state so Init can run again.
// Tests use it to point each run at a fresh file.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	if writer != nil {
		writer.Close()
		writer = nil
	}
	root = nil
	initDone = false
	once = sync.Once{}
	logPath = ""
	level = new(slog.LevelVar)
}

// Path returns the active log file path, or "" before initialization.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// ComponentLogger returns a logger tagged with component.
//
//	log := logger.ComponentLogger("api")
//	log.Info("topics loaded", "count", len(topics))
func ComponentLogger(component string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()

	if root == nil {
		return slog.New(slog.DiscardHandler)
	}
	return root.With(slog.String("component", component))
}
