package staging

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// ErrDestinationBusy reports that another run is writing the same output.
var ErrDestinationBusy = errors.New("destination is being written by another run")

const lockPrefix = "silencecut-lock-"

// DestinationLock is an exclusive advisory lock keyed by an output path.
type DestinationLock struct {
	path   string
	target string
	lock   *flock.Flock
}

// LockDestination takes a non-blocking exclusive lock for output. The lock
// file lives in root (the OS temp dir when empty) and is named after a hash
// of the absolute output path.
func LockDestination(root, output string) (*DestinationLock, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = os.TempDir()
	}
	abs, err := filepath.Abs(output)
	if err != nil {
		return nil, fmt.Errorf("resolve destination: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("ensure lock directory: %w", err)
	}

	sum := sha256.Sum256([]byte(abs))
	lockPath := filepath.Join(root, lockPrefix+hex.EncodeToString(sum[:8])+".lock")
	fl := flock.New(lockPath)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire destination lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDestinationBusy, abs)
	}
	return &DestinationLock{path: lockPath, target: abs, lock: fl}, nil
}

// Path returns the lock file path.
func (l *DestinationLock) Path() string {
	return l.path
}

// Target returns the absolute destination the lock guards.
func (l *DestinationLock) Target() string {
	return l.target
}

// Release unlocks the destination. The lock file stays in place so a
// concurrent run that already opened it keeps contending on the same inode.
func (l *DestinationLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release destination lock: %w", err)
	}
	return nil
}
