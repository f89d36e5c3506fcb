package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix marks in-flight writes; the watcher ignores these files.
const TempFilePrefix = "jot-tmp-"

// WriteFile replaces filename with data in a single rename, so readers only
// ever see the previous or the new content. Used for keys and CLI exports.
func WriteFile(filename string, data []byte) error {
	return replaceFile(filename, data, 0644)
}

func replaceFile(filename string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", filename, err)
	}
	name := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(name)
		}
	}()

	if _, err = tmp.Write(data); err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write temp for %s: %w", filename, err)
	}

	if err = os.Chmod(name, perm); err != nil {
		return fmt.Errorf("chmod %s: %w", name, err)
	}
	if err = os.Rename(name, filename); err != nil {
		return fmt.Errorf("replace %s: %w", filename, err)
	}
	return nil
}
