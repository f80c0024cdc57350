// Package workspace manages ephemeral scratch directories for
// intermediate conversion artifacts.
package workspace

import (
	"fmt"
	"os"
)

// Acquire creates a uniquely named temporary directory.
func Acquire(prefix string) (string, error) {
	dir, err := os.MkdirTemp("", prefix)
	if err != nil {
		return "", fmt.Errorf("creating workspace: %w", err)
	}
	return dir, nil
}

// Release recursively removes a workspace. Removal errors are swallowed:
// the directory may already be gone or partially locked, and cleanup must
// never mask the pipeline's real outcome.
func Release(dir string) {
	_ = os.RemoveAll(dir)
}

// With runs fn inside a freshly acquired workspace and releases it on
// every exit path, including panics.
func With(prefix string, fn func(dir string) error) error {
	dir, err := Acquire(prefix)
	if err != nil {
		return err
	}
	defer Release(dir)
	return fn(dir)
}
