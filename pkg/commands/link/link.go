// Package link implements tree mirroring: every eligible file under a
// source directory is linked into a destination directory at the same
// relative path, pointing back at the original.
package link

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/symgr/pkg/backup"
	"github.com/arthur-debert/symgr/pkg/config"
	"github.com/arthur-debert/symgr/pkg/errors"
	"github.com/arthur-debert/symgr/pkg/filesystem"
	"github.com/arthur-debert/symgr/pkg/ignore"
	"github.com/arthur-debert/symgr/pkg/logging"
	"github.com/arthur-debert/symgr/pkg/symlink"
	"github.com/arthur-debert/symgr/pkg/types"
)

// LinkTreeOptions holds options for the link-tree command.
type LinkTreeOptions struct {
	// SourceDir is the repository tree holding the canonical files.
	SourceDir string
	// DestDir is the live directory to populate with symlinks.
	DestDir string
	// SystemFiles are base names never mirrored. Defaults to the
	// version-control metadata names when empty.
	SystemFiles []string
	// Oracle is the ignore check. Defaults to the git oracle.
	Oracle ignore.Oracle
	// Saver backs up displaced files. Defaults to the timestamped rename.
	Saver backup.Saver
	// DryRun reports actions without mutating the filesystem.
	DryRun bool
	// FileSystem allows injecting a filesystem for testing.
	FileSystem types.FS
}

// LinkTree mirrors every eligible file under SourceDir into DestDir as a
// symlink back to the original, preserving relative directory structure.
// The walk is sorted and fail-fast: the first link failure aborts it, and
// links created before the failure remain (reruns are idempotent). Nothing
// is ever deleted from DestDir.
func LinkTree(opts LinkTreeOptions) (*types.TreeResult, error) {
	logger := logging.GetLogger("commands.link")
	logger.Info().
		Str("source", opts.SourceDir).
		Str("dest", opts.DestDir).
		Bool("dry_run", opts.DryRun).
		Msg("Linking tree")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	oracle := opts.Oracle
	if oracle == nil {
		oracle = ignore.NewGit()
	}
	saver := opts.Saver
	if saver == nil {
		saver = backup.NewRename(fs)
	}
	systemFiles := opts.SystemFiles
	if systemFiles == nil {
		systemFiles = config.DefaultSystemFiles
	}

	info, err := fs.Stat(opts.SourceDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound, "source directory %s", opts.SourceDir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidArgs, "source %s is not a directory", opts.SourceDir)
	}

	w := &walker{
		fs:          fs,
		oracle:      oracle,
		linker:      symlink.NewLinker(fs, saver, opts.DryRun),
		systemFiles: toSet(systemFiles),
		result: &types.TreeResult{
			SourceDir: opts.SourceDir,
			DestDir:   opts.DestDir,
		},
	}

	if err := w.walk(opts.SourceDir, opts.DestDir); err != nil {
		logger.Error().Err(err).Msg("Tree walk failed")
		return w.result, err
	}

	logger.Info().
		Int("linked", len(w.result.Links)).
		Int("skipped", len(w.result.Skipped)).
		Msg("Tree linked")
	return w.result, nil
}

type walker struct {
	fs          types.FS
	oracle      ignore.Oracle
	linker      *symlink.Linker
	systemFiles map[string]bool
	result      *types.TreeResult
}

// walk mirrors the files under srcDir into destDir. ReadDir returns
// entries sorted by name, which keeps the walk order deterministic.
func (w *walker) walk(srcDir, destDir string) error {
	entries, err := w.fs.ReadDir(srcDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", srcDir)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(srcDir, entry.Name())

		if w.systemFiles[entry.Name()] {
			w.skip(srcPath, types.SkipSystemFile)
			continue
		}

		ignored, err := w.oracle.IsIgnored(srcPath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIgnoreCheck, "ignore check failed for %s", srcPath)
		}
		if ignored {
			w.skip(srcPath, types.SkipIgnored)
			continue
		}

		destPath := filepath.Join(destDir, entry.Name())

		if entry.IsDir() {
			if err := w.walk(srcPath, destPath); err != nil {
				return err
			}
			continue
		}

		// A dangling symlink in the source has nothing to point at.
		if entry.Type()&os.ModeSymlink != 0 {
			if _, err := w.fs.Stat(srcPath); os.IsNotExist(err) {
				w.skip(srcPath, types.SkipMissing)
				continue
			}
		}

		res, err := w.linker.LinkOne(srcPath, destPath)
		if err != nil {
			return err
		}
		w.result.Links = append(w.result.Links, *res)
	}

	return nil
}

func (w *walker) skip(path string, reason types.SkipReason) {
	logger := logging.GetLogger("commands.link")
	logger.Debug().Str("path", path).Str("reason", string(reason)).Msg("Skipping")
	w.result.Skipped = append(w.result.Skipped, types.SkippedFile{Path: path, Reason: reason})
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
