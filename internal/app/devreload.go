package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// BinaryWatcher notices when the running executable is rebuilt so a
// development build can offer to restart itself.
type BinaryWatcher struct {
	path     string
	baseline time.Time
	interval time.Duration
	log      *zap.Logger
}

// NewBinaryWatcher watches the current executable.
func NewBinaryWatcher(interval time.Duration, log *zap.Logger) (*BinaryWatcher, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}
	// go build replaces the file, so follow symlinks to the real one.
	if real, err := filepath.EvalSymlinks(exe); err == nil {
		exe = real
	}
	return newBinaryWatcher(exe, interval, log)
}

func newBinaryWatcher(path string, interval time.Duration, log *zap.Logger) (*BinaryWatcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat executable: %w", err)
	}
	return &BinaryWatcher{path: path, baseline: info.ModTime(), interval: interval, log: log}, nil
}

// Path returns the watched file.
func (w *BinaryWatcher) Path() string {
	return w.path
}

// Run polls until ctx is done, calling onChange from its own goroutine each
// time the file's modification time moves past the last one seen.
func (w *BinaryWatcher) Run(ctx context.Context, onChange func()) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := os.Stat(w.path)
			if err != nil || !info.ModTime().After(w.baseline) {
				continue
			}
			w.baseline = info.ModTime()
			w.log.Info("executable rebuilt", zap.String("path", w.path), zap.Time("modified", w.baseline))
			onChange()
		}
	}
}

// Restart replaces the current process with the watched executable, keeping
// arguments and environment. It does not return on success.
func (w *BinaryWatcher) Restart() error {
	return syscall.Exec(w.path, os.Args, os.Environ())
}
