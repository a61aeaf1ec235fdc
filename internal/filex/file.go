package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates the directory for path (including parents) and returns
// the cleaned absolute-ish path back to the caller.
func EnsureDir(path string) (string, error) {
	dir := filepath.Clean(path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// EnsureParentDir creates the parent directory of the given file path so the
// file can be created afterwards.
func EnsureParentDir(path string) error {
	_, err := EnsureDir(filepath.Dir(path))
	return err
}
