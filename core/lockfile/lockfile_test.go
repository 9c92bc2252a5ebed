package lockfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_SecondAcquireIsHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")

	first, err := Acquire(path)
	require.NoError(t, err)
	defer first.Release()

	_, err = Acquire(path)
	assert.ErrorIs(t, err, ErrHeld)
}

func TestAcquire_ReleaseAllowsReacquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")

	first, err := Acquire(path)
	require.NoError(t, err)
	first.Release()

	second, err := Acquire(path)
	require.NoError(t, err)
	second.Release()
}

func TestAcquire_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "run.lock")

	l, err := Acquire(path)
	require.NoError(t, err)
	l.Release()
}

func TestRelease_NilLockIsSafe(t *testing.T) {
	var l *Lock
	l.Release()
}
