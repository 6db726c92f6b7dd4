package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteFile creates path with placeholder content, making parent directories
// as needed.
func WriteFile(t testing.TB, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create parent for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("test media"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Touch sets path's modification time, creating the file first if needed.
func Touch(t testing.TB, path string, mtime time.Time) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		WriteFile(t, path)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("set mtime on %s: %v", path, err)
	}
}

// Symlink creates a symlink at link pointing to target, making parent
// directories as needed.
func Symlink(t testing.TB, target, link string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(link), 0o755); err != nil {
		t.Fatalf("create parent for %s: %v", link, err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink %s: %v", link, err)
	}
}

// ReadLink resolves the symlink at path and fails the test on error.
func ReadLink(t testing.TB, path string) string {
	t.Helper()

	target, err := os.Readlink(path)
	if err != nil {
		t.Fatalf("readlink %s: %v", path, err)
	}
	return target
}
