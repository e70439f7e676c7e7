package merge

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"chapterize/internal/services"
)

// LockPath returns the lock file guarding output. Paths are made absolute
// first so relative and absolute spellings of one file share a lock.
func LockPath(workDir, output string) string {
	if abs, err := filepath.Abs(output); err == nil {
		output = abs
	}
	key := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+output))
	return filepath.Join(workDir, "output-"+key.String()+".lock")
}

type outputLock struct {
	lock *flock.Flock
}

func acquireOutputLock(workDir, output string) (*outputLock, error) {
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	path := LockPath(workDir, output)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrOutputBusy, "lock", "", output, nil)
	}
	return &outputLock{lock: lock}, nil
}

// release unlocks but leaves the file in place. Removing it would let a
// waiter holding the old inode and a newcomer on a fresh file both succeed.
func (l *outputLock) release() error {
	if l == nil {
		return nil
	}
	return l.lock.Unlock()
}
