// Package lockfile provides the advisory lock that keeps scheduled runs
// from overlapping. A held lock is not an error condition: the second run
// exits cleanly without doing anything.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrHeld is returned when another process already holds the lock.
var ErrHeld = errors.New("lockfile: another run is in progress")

// Lock is an acquired advisory file lock.
type Lock struct {
	fl *flock.Flock
}

// Acquire takes the advisory lock at path without blocking. It returns
// ErrHeld when another process holds it.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("lockfile: %w", err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lockfile: %w", err)
	}
	if !ok {
		return nil, ErrHeld
	}
	return &Lock{fl: fl}, nil
}

// Release drops the lock. Safe to defer immediately after Acquire.
func (l *Lock) Release() {
	if l == nil || l.fl == nil {
		return
	}
	_ = l.fl.Unlock()
}
