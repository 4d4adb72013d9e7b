package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"nasum/internal/services"
)

// LockName is the build lock file kept in the output directory.
const LockName = ".nasum.lock"

func acquireLock(outDir string) (*flock.Flock, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "build", "lock", "create output directory", err)
	}
	lock := flock.New(filepath.Join(outDir, LockName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire build lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, "build", "lock",
			fmt.Sprintf("another build is already writing to %s", outDir), nil)
	}
	return lock, nil
}
