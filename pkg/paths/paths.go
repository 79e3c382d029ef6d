// Package paths provides path normalization for symgr. Every comparison in
// the reconciliation core happens on absolute, symlink-resolved paths; this
// package is the single place that produces them.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading ~ or ~/ to the user's home directory.
// Paths without a tilde prefix are returned unchanged.
func ExpandHome(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Resolve returns the absolute, symlink-resolved form of path. The path
// itself does not have to exist: the longest existing ancestor is resolved
// and the remaining components are rejoined lexically.
func Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return resolveAbs(abs)
}

func resolveAbs(abs string) (string, error) {
	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	dir := filepath.Dir(abs)
	if dir == abs {
		// Filesystem root; nothing left to resolve.
		return abs, nil
	}
	resolvedDir, err := resolveAbs(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, filepath.Base(abs)), nil
}

// ResolveParent resolves path's parent chain but not its final component.
// This is the form link locations are compared in: following the final
// component would chase an existing symlink into the target's directory.
func ResolveParent(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(abs)
	if dir == abs {
		return abs, nil
	}
	resolvedDir, err := resolveAbs(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, filepath.Base(abs)), nil
}

// Parent returns the directory containing path.
func Parent(path string) string {
	return filepath.Dir(path)
}
