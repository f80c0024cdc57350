package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-pdf2epub/internal/fileutil"
)

func TestFileExists(t *testing.T) {
	t.Parallel()

	t.Run("regular file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "f.txt")
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if !fileutil.FileExists(path) {
			t.Error("FileExists() = false, want true")
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		if fileutil.FileExists(t.TempDir()) {
			t.Error("FileExists() = true for a directory, want false")
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()
		if fileutil.FileExists(filepath.Join(t.TempDir(), "absent")) {
			t.Error("FileExists() = true for missing path, want false")
		}
	})
}

func TestCopyFile(t *testing.T) {
	t.Parallel()

	t.Run("copies content and permissions", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		src := filepath.Join(dir, "src.md")
		dest := filepath.Join(dir, "dest.md")
		if err := os.WriteFile(src, []byte("# Title"), 0o640); err != nil { // #nosec G306 -- perm under test
			t.Fatalf("setup: %v", err)
		}

		if err := fileutil.CopyFile(src, dest); err != nil {
			t.Fatalf("CopyFile() error = %v", err)
		}

		data, err := os.ReadFile(dest)
		if err != nil {
			t.Fatalf("reading dest: %v", err)
		}
		if string(data) != "# Title" {
			t.Errorf("dest = %q, want source content", data)
		}
		info, err := os.Stat(dest)
		if err != nil {
			t.Fatalf("stat dest: %v", err)
		}
		if info.Mode().Perm() != 0o640 {
			t.Errorf("dest perm = %v, want 0640", info.Mode().Perm())
		}
	})

	t.Run("overwrites an existing destination", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		src := filepath.Join(dir, "src.md")
		dest := filepath.Join(dir, "dest.md")
		if err := os.WriteFile(src, []byte("new"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(dest, []byte("old"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fileutil.CopyFile(src, dest); err != nil {
			t.Fatalf("CopyFile() error = %v", err)
		}
		data, _ := os.ReadFile(dest)
		if string(data) != "new" {
			t.Errorf("dest = %q, want %q", data, "new")
		}
	})

	t.Run("missing source is an error", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		err := fileutil.CopyFile(filepath.Join(dir, "absent"), filepath.Join(dir, "dest"))
		if err == nil {
			t.Error("CopyFile() error = nil, want stat failure")
		}
	})
}
