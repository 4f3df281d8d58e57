package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// rotatingWriter is a zapcore.WriteSyncer that appends to a single log file
// and rotates it once a write would push it past maxBytes. Rotation shifts
// the existing backups up one suffix ("<file>.1" becomes "<file>.2" and so
// on), discards "<file>.<backups>", renames the current file to "<file>.1"
// and reopens a fresh file for the pending write.
//
// All writes and rotation decisions are serialized by one mutex so
// concurrent emits from the same process can neither interleave inside a
// JSON line nor race a rotation boundary.
type rotatingWriter struct {
	mu       sync.Mutex
	path     string
	maxBytes int64
	backups  int
	file     *os.File
	size     int64
}

// newRotatingWriter opens (creating if necessary) the log file at path and
// prepares it for appending. The parent directory is created when absent; a
// directory or file that cannot be created is a construction error.
func newRotatingWriter(path string, maxBytes int64, backups int) (*rotatingWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogDirectory, err)
	}
	w := &rotatingWriter{
		path:     path,
		maxBytes: maxBytes,
		backups:  backups,
	}
	if err := w.open(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogDirectory, err)
	}
	return w, nil
}

// open opens the base file for appending and records its current size so
// rotation decisions do not need a stat per write.
func (w *rotatingWriter) open() error {
	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}
	w.file = file
	w.size = info.Size()
	return nil
}

func (w *rotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Rotate before the write that would exceed the cap. A single entry
	// larger than the cap still goes into a fresh file whole; capping is
	// per file, not per entry.
	if w.maxBytes > 0 && w.size > 0 && w.size+int64(len(p)) > w.maxBytes {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

// rotate runs the shift-rename chain under the write lock. Rename errors on
// individual backups are ignored: a missing backup must not stall logging,
// and the chain self-heals on the next rotation.
func (w *rotatingWriter) rotate() error {
	if err := w.file.Close(); err != nil {
		return err
	}

	if w.backups > 0 {
		// Discard the oldest backup, then shift the rest up one slot.
		os.Remove(fmt.Sprintf("%s.%d", w.path, w.backups))
		for i := w.backups - 1; i >= 1; i-- {
			src := fmt.Sprintf("%s.%d", w.path, i)
			if _, err := os.Stat(src); err == nil {
				os.Rename(src, fmt.Sprintf("%s.%d", w.path, i+1))
			}
		}
		os.Rename(w.path, w.path+".1")
	} else {
		// No backups kept: the current file is simply discarded.
		os.Remove(w.path)
	}

	return w.open()
}

// Sync flushes the current file to stable storage.
func (w *rotatingWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Sync()
}

// Close closes the current file. The writer must not be used afterwards.
func (w *rotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
