// Package lockfile provides per-tool advisory locks so two concurrent
// installs of the same tool cannot race on the check-then-place sequence.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StaleThreshold is the age past which a leftover lock from a crashed
// process is swept.
const StaleThreshold = 10 * time.Minute

// ErrLocked means another install of the same tool holds the lock.
var ErrLocked = errors.New("install already in progress")

// Lock is a held advisory lock. Release it when the install finishes.
type Lock struct {
	path string
	file *os.File
}

// Acquire takes the lock for the named install target. Lock files live in
// dir and are created with O_CREATE|O_EXCL so acquisition is atomic. A
// lock older than StaleThreshold is treated as abandoned and swept once.
func Acquire(dir, name string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lockPath := filepath.Join(dir, name+".lock")

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
	if err != nil {
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}
		if !isStale(lockPath) {
			return nil, fmt.Errorf("%s: %w", name, ErrLocked)
		}
		os.Remove(lockPath)
		file, err = os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, ErrLocked)
		}
	}

	meta := fmt.Sprintf("pid=%d\ntimestamp=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
	if _, err := file.WriteString(meta); err != nil {
		file.Close()
		os.Remove(lockPath)
		return nil, fmt.Errorf("write lock metadata: %w", err)
	}

	return &Lock{path: lockPath, file: file}, nil
}

// Release drops the lock. Safe to call more than once.
func (l *Lock) Release() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	if l.path != "" {
		path := l.path
		l.path = ""
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove lock file: %w", err)
		}
	}
	return nil
}

func isStale(lockPath string) bool {
	info, err := os.Stat(lockPath)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) > StaleThreshold
}
