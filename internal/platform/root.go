package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDir is the directory holding the fs storage inside a project root.
const DataDir = ".jot"

// FindRoot walks upwards from startDir looking for a jot root.
// Indicators are: a .jot directory or a jot.yaml file.
// It returns the absolute path of the first directory carrying one.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, DataDir) || hasFile(dir, ConfigName+".yaml") {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

// ResolveDataDir returns the fs storage directory for startDir: the .jot
// directory of the nearest root, or a new one in startDir itself.
func ResolveDataDir(startDir string) (string, error) {
	root, err := FindRoot(startDir)
	if err != nil {
		abs, absErr := filepath.Abs(startDir)
		if absErr != nil {
			return "", absErr
		}
		root = abs
	}
	return filepath.Join(root, DataDir), nil
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
