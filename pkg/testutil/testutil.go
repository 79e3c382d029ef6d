package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// CreateDir creates a directory in the specified parent directory.
// It fails the test if the directory cannot be created.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)

	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}

	return path
}

// CreateSymlink creates a symbolic link pointing to target.
// It fails the test if the symlink cannot be created.
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatalf("Failed to create parent directory for symlink %s: %v", link, err)
	}

	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Failed to create symlink %s -> %s: %v", link, target, err)
	}
}

// IsSymlink reports whether path is a symbolic link.
func IsSymlink(t *testing.T, path string) bool {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// ReadLink returns the target of a symlink, failing the test on error.
func ReadLink(t *testing.T, path string) string {
	t.Helper()

	target, err := os.Readlink(path)
	if err != nil {
		t.Fatalf("Failed to read symlink %s: %v", path, err)
	}
	return target
}

// ResolvedTarget returns the fully resolved referent of a symlink,
// failing the test on error.
func ResolvedTarget(t *testing.T, path string) string {
	t.Helper()

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("Failed to resolve %s: %v", path, err)
	}
	return resolved
}

// FileContent reads a file's content, failing the test on error.
func FileContent(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// AssertSymlinkTo fails the test unless link is a symlink whose resolved
// target equals the resolved form of want.
func AssertSymlinkTo(t *testing.T, link, want string) {
	t.Helper()

	if !IsSymlink(t, link) {
		t.Fatalf("%s is not a symlink", link)
	}

	got := ResolvedTarget(t, link)
	wantResolved, err := filepath.EvalSymlinks(want)
	if err != nil {
		t.Fatalf("Failed to resolve expected target %s: %v", want, err)
	}
	if got != wantResolved {
		t.Fatalf("%s resolves to %s, want %s", link, got, wantResolved)
	}
}

// FindBackups returns paths in dir whose names mark them as backups of
// base (the timestamped .bak convention).
func FindBackups(t *testing.T, dir, base string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, base+".*.bak"))
	if err != nil {
		t.Fatalf("Failed to glob for backups of %s: %v", base, err)
	}
	return matches
}
