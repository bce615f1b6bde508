package state

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// FileLock is an exclusive advisory flock(2) lock held on a file.
type FileLock struct {
	file *os.File
	path string
}

// LockFile blocks until it holds an exclusive lock on path, creating the
// file with mode 0600 if needed. Callers must Unlock.
func LockFile(path string) (*FileLock, error) {
	//nolint:gosec // G304: lock path is derived from the config directory
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for locking: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	return &FileLock{file: f, path: path}, nil
}

// Unlock releases the lock and closes the file. It is safe to call twice.
func (fl *FileLock) Unlock() error {
	if fl.file == nil {
		return nil
	}

	if err := syscall.Flock(int(fl.file.Fd()), syscall.LOCK_UN); err != nil {
		_ = fl.file.Close()
		fl.file = nil
		return fmt.Errorf("failed to release lock: %w", err)
	}

	if err := fl.file.Close(); err != nil {
		fl.file = nil
		return fmt.Errorf("failed to close file: %w", err)
	}

	fl.file = nil
	return nil
}

// Path returns the path of the lock file.
func (fl *FileLock) Path() string {
	return fl.path
}

// WithFileLock runs fn while holding the lock on lockPath. The lock's parent
// directory is created if missing.
func WithFileLock(lockPath string, fn func() error) (err error) {
	if err := EnsureDir(filepath.Dir(lockPath)); err != nil {
		return err
	}

	lock, err := LockFile(lockPath)
	if err != nil {
		return err
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}()

	return fn()
}
