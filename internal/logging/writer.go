package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// logFile is an append-only log sink with size-based rotation: when a write
// would push the file past its limit, hcrbench.log shifts to hcrbench.log.1
// and so on, and the oldest backup is dropped. A mutex serializes writes
// from concurrent goroutines.
type logFile struct {
	path    string
	limit   int64
	backups int

	mu   sync.Mutex
	f    *os.File
	size int64
}

// openLogFile creates the log directory if needed and opens path for
// appending. limit <= 0 disables rotation.
func openLogFile(path string, limit int64, backups int) (*logFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	lf := &logFile{path: path, limit: limit, backups: backups}
	if err := lf.open(); err != nil {
		return nil, err
	}
	return lf, nil
}

func (lf *logFile) open() error {
	f, err := os.OpenFile(lf.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	lf.f = f
	lf.size = info.Size()
	return nil
}

// Write implements io.Writer, rotating first when the record would not fit.
func (lf *logFile) Write(p []byte) (int, error) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.limit > 0 && lf.size+int64(len(p)) > lf.limit {
		if err := lf.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := lf.f.Write(p)
	lf.size += int64(n)
	return n, err
}

// Close flushes and closes the file. Later calls are no-ops that return
// nil; the logFile is not reusable afterwards.
func (lf *logFile) Close() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.f == nil {
		return nil
	}
	err := lf.f.Sync()
	if cerr := lf.f.Close(); err == nil {
		err = cerr
	}
	lf.f = nil
	return err
}

// rotate shifts backups oldest-first so every rename lands on a free slot,
// then reopens a fresh file. Called with the mutex held.
func (lf *logFile) rotate() error {
	if err := lf.f.Close(); err != nil {
		return fmt.Errorf("close log file for rotation: %w", err)
	}
	lf.f = nil

	_ = os.Remove(backupName(lf.path, lf.backups))
	for i := lf.backups - 1; i >= 1; i-- {
		_ = os.Rename(backupName(lf.path, i), backupName(lf.path, i+1))
	}
	if lf.backups > 0 {
		_ = os.Rename(lf.path, backupName(lf.path, 1))
	} else {
		_ = os.Remove(lf.path)
	}

	lf.size = 0
	return lf.open()
}

func backupName(path string, n int) string {
	return fmt.Sprintf("%s.%d", path, n)
}
