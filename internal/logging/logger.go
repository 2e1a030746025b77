// Package logging writes diagnostic logs to a dated file. Standard output
// is the drawing surface, so nothing is ever logged there.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu       sync.Mutex
	file     *os.File
	filePath string
	logger   = slog.New(slog.DiscardHandler)
)

// Initialize opens glyphplay-<date>.log in logDir and routes the default
// logger there. An empty logDir leaves logging disabled.
func Initialize(logDir string, level slog.Level) error {
	if logDir == "" {
		return nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	path := filepath.Join(logDir, fmt.Sprintf("glyphplay-%s.log", time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	file = f
	filePath = path
	logger = New(f, level)
	return nil
}

// New returns a text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Logger returns the current logger. It discards output until Initialize succeeds.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Path returns the current log file path, or "" when disabled.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return filePath
}

// Close flushes and closes the log file and disables logging.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	logger = slog.New(slog.DiscardHandler)
	filePath = ""
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}
