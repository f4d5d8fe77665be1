package hooks

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ResolveRoot returns the project root. An explicit root wins; otherwise
// the root is found by walking depth directories up from the directory of
// the running executable, with symlinks resolved.
func ResolveRoot(explicit string, depth int) (string, error) {
	if explicit != "" {
		root, err := filepath.Abs(explicit)
		if err != nil {
			return "", errors.Wrapf(err, "failed to resolve project root %s", explicit)
		}
		return root, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate executable")
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve executable path")
	}

	return RootFromExecutable(exe, depth), nil
}

// RootFromExecutable walks depth directories up from the directory
// containing exe.
func RootFromExecutable(exe string, depth int) string {
	dir := filepath.Dir(exe)
	for i := 0; i < depth; i++ {
		dir = filepath.Dir(dir)
	}
	return dir
}
