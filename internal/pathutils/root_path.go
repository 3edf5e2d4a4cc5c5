// Package pathutils locates filesystem anchors for package loading.
package pathutils

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FindModuleRoot returns the absolute path to the enclosing Go module's
// root directory by searching for a go.mod file upwards from the working
// directory. It fails when the working directory cannot be determined, a
// filesystem operation fails, or no go.mod exists in the directory tree.
func FindModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get current working directory")
	}
	return findModuleRootFrom(filepath.Clean(dir))
}

func findModuleRootFrom(dir string) (string, error) {
	for {
		goModPath := filepath.Join(dir, "go.mod")
		fi, err := os.Stat(goModPath)
		switch {
		case err == nil && !fi.IsDir():
			return dir, nil
		case err != nil && !os.IsNotExist(err):
			return "", errors.Wrapf(err, "failed to stat %s", goModPath)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found in directory tree")
		}
		dir = parent
	}
}
