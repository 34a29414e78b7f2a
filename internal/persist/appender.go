package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// AppendWriter is an io.Writer over a single log file opened in append mode.
type AppendWriter struct {
	path string

	mu            sync.Mutex
	file          *os.File
	written       int64
	immediateSync bool
}

// NewAppendWriter opens (creating if needed) the file at path for appending.
// The parent directory must already exist.
func NewAppendWriter(path string, immediateSync bool) (*AppendWriter, error) {
	w := &AppendWriter{
		path:          path,
		immediateSync: immediateSync,
	}
	if err := w.openFile(); err != nil {
		return nil, err
	}
	return w, nil
}

// Path returns the file path.
func (w *AppendWriter) Path() string {
	return w.path
}

// Size returns the file size: what was there on open plus what was written.
func (w *AppendWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// SetImmediateSync enables or disables a sync after each write.
func (w *AppendWriter) SetImmediateSync(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.immediateSync = enabled
}

// Write implements io.Writer.
func (w *AppendWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return 0, os.ErrClosed
	}

	n, err = w.file.Write(p)
	w.written += int64(n)
	if err != nil {
		return n, err
	}

	if w.immediateSync {
		if err := w.file.Sync(); err != nil {
			return n, fmt.Errorf("failed to sync log file: %w", err)
		}
	}
	return n, nil
}

// Sync flushes the file to disk.
func (w *AppendWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file != nil {
		return w.file.Sync()
	}
	return nil
}

// Close closes the file. Calling Close twice is safe.
func (w *AppendWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// openFile opens or creates the log file.
func (w *AppendWriter) openFile() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	w.file = f
	w.written = info.Size()
	return nil
}

// LogDir returns the log directory under filesDir.
func LogDir(filesDir string) string {
	return filepath.Join(filesDir, LogDirName)
}

// LogPath returns the log file path for logName under filesDir.
func LogPath(filesDir, logName string) string {
	return filepath.Join(LogDir(filesDir), logName)
}

// EnsureLogDir creates the log directory under filesDir if missing.
func EnsureLogDir(filesDir string) error {
	return os.MkdirAll(LogDir(filesDir), 0o755)
}
