package catalogs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/agentstation/harvest/pkg/constants"
	"github.com/agentstation/harvest/pkg/errors"
)

// Lock takes an advisory lock on path for the duration of a run. It fails
// immediately with ErrLocked when another process holds it. The returned
// function releases the lock; the lock file itself is left in place.
func Lock(path string) (func() error, error) {
	lockPath := path + constants.LockSuffix
	if err := os.MkdirAll(filepath.Dir(lockPath), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", filepath.Dir(lockPath), err)
	}
	fl := flock.New(lockPath)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, errors.WrapIO("lock", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is held by another run", errors.ErrLocked, lockPath)
	}
	return fl.Unlock, nil
}
