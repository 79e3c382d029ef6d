package filesystem

import (
	"fmt"
	"os"

	"github.com/arthur-debert/symgr/pkg/types"
)

// Copy copies src to dst, preserving the file mode and timestamps.
// An existing dst is overwritten. This is the copy-with-metadata primitive
// used by bless; it never follows dst if dst is a symlink target chain,
// it writes dst directly.
func Copy(fs types.FS, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source %s: %w", src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("source %s is a directory, not a file", src)
	}

	data, err := fs.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}

	if err := fs.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}

	// WriteFile does not change the mode of a pre-existing file.
	if err := fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", dst, err)
	}

	// Timestamps go through os directly; they are metadata-only and have
	// no behavioral significance for reconciliation.
	mtime := info.ModTime()
	if err := os.Chtimes(dst, mtime, mtime); err != nil {
		return fmt.Errorf("failed to set times on %s: %w", dst, err)
	}

	return nil
}
