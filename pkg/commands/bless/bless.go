// Package bless implements blessing: moving a live file's content into the
// repository tree and leaving a symlink in its place.
package bless

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/symgr/pkg/backup"
	"github.com/arthur-debert/symgr/pkg/errors"
	"github.com/arthur-debert/symgr/pkg/filesystem"
	"github.com/arthur-debert/symgr/pkg/logging"
	"github.com/arthur-debert/symgr/pkg/symlink"
	"github.com/arthur-debert/symgr/pkg/types"
)

// BlessOptions holds options for the bless command.
type BlessOptions struct {
	// FromFile is the live file whose content moves into the tree.
	FromFile string
	// ToDir is the tree directory that receives the content, under the
	// file's base name.
	ToDir string
	// Saver backs up displaced files. Defaults to the timestamped rename.
	Saver backup.Saver
	// DryRun reports actions without mutating the filesystem.
	DryRun bool
	// FileSystem allows injecting a filesystem for testing.
	FileSystem types.FS
}

// Bless copies FromFile into ToDir and replaces the original with a
// symlink to the copy. The original content survives twice over: as the
// tracked copy, and as the backup taken when the symlink displaces the
// live file. A copy failure aborts before any symlink is attempted, so
// the original is never lost.
func Bless(opts BlessOptions) (*types.BlessResult, error) {
	logger := logging.GetLogger("commands.bless")
	logger.Info().
		Str("from", opts.FromFile).
		Str("to", opts.ToDir).
		Bool("dry_run", opts.DryRun).
		Msg("Blessing file into tree")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	saver := opts.Saver
	if saver == nil {
		saver = backup.NewRename(fs)
	}

	info, err := fs.Stat(opts.FromFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrFileNotFound, "cannot bless %s: file does not exist", opts.FromFile)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", opts.FromFile)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidArgs, "cannot bless %s: it is a directory", opts.FromFile)
	}

	toPath := filepath.Join(opts.ToDir, filepath.Base(opts.FromFile))

	result := &types.BlessResult{
		OriginalPath: opts.FromFile,
		TrackedPath:  toPath,
	}

	if opts.DryRun {
		logger.Info().
			Str("from", opts.FromFile).
			Str("tracked", toPath).
			Msg("Dry run, would copy and link back")
		return result, nil
	}

	if err := fs.MkdirAll(filepath.Dir(toPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(toPath))
	}

	// A file already tracked under this name is moved aside, not clobbered.
	existing, err := symlink.Inspect(fs, toPath)
	if err != nil {
		return nil, err
	}
	if existing.Kind == types.StateRegular {
		if _, err := saver.Save(toPath); err != nil {
			return nil, err
		}
	}

	if err := filesystem.Copy(fs, opts.FromFile, toPath); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCopyFailed, "failed to copy %s to %s", opts.FromFile, toPath)
	}

	linker := symlink.NewLinker(fs, saver, false)
	linkRes, err := linker.LinkOne(toPath, opts.FromFile)
	if err != nil {
		return nil, err
	}
	result.BackupPath = linkRes.BackupPath

	logger.Info().
		Str("original", opts.FromFile).
		Str("tracked", toPath).
		Str("backup", result.BackupPath).
		Msg("Blessed file")
	return result, nil
}
