// Package fileutil provides file and path utility functions.
package fileutil

import (
	"fmt"
	"os"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// CopyFile copies src to dest, preserving the source permissions.
// dest is truncated if it already exists.
func CopyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	data, err := os.ReadFile(src) // #nosec G304 -- caller controls both paths
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	if err := os.WriteFile(dest, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing destination: %w", err)
	}
	return nil
}
