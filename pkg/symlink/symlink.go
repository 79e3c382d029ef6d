// Package symlink implements the link-reconciliation primitive: given a
// target and a desired link location, make the location a symlink to the
// resolved target, handling whatever currently occupies it.
package symlink

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/symgr/pkg/backup"
	"github.com/arthur-debert/symgr/pkg/errors"
	"github.com/arthur-debert/symgr/pkg/logging"
	"github.com/arthur-debert/symgr/pkg/paths"
	"github.com/arthur-debert/symgr/pkg/types"
)

// Inspect returns the observed state of path from a single lstat query.
// The state is a closed variant: absent, regular file, symlink (with its
// raw link value), or directory.
func Inspect(fs types.FS, path string) (types.PathState, error) {
	info, err := fs.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.PathState{Kind: types.StateAbsent}, nil
		}
		return types.PathState{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to lstat %s", path)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := fs.Readlink(path)
		if err != nil {
			return types.PathState{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to read symlink %s", path)
		}
		return types.PathState{Kind: types.StateSymlink, LinkTarget: target}, nil
	}

	if info.IsDir() {
		return types.PathState{Kind: types.StateDirectory}, nil
	}

	return types.PathState{Kind: types.StateRegular}, nil
}

// Linker reconciles single symlinks. It holds the injected filesystem and
// the backup saver used when a regular file is in the way.
type Linker struct {
	fs     types.FS
	saver  backup.Saver
	dryRun bool
	logger zerolog.Logger
}

// NewLinker creates a Linker. In dry-run mode LinkOne reports the action
// it would take without touching the filesystem.
func NewLinker(fs types.FS, saver backup.Saver, dryRun bool) *Linker {
	return &Linker{
		fs:     fs,
		saver:  saver,
		dryRun: dryRun,
		logger: logging.GetLogger("symlink"),
	}
}

// LinkOne ensures location is a symlink to the resolved target. On success
// the returned result says what was done: nothing (already correct), a
// fresh link, a replaced wrong link, or a backup followed by a link.
//
// LinkOne is idempotent: a second call with the same arguments observes
// the correct symlink and performs no mutation.
func (l *Linker) LinkOne(target, location string) (*types.LinkResult, error) {
	resolvedTarget, err := paths.Resolve(target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to resolve target %s", target)
	}
	// The location's final component must not be followed: when it is
	// already a symlink into the target's directory, full resolution
	// would land next to the target and falsely trip the guard.
	resolvedLocation, err := paths.ResolveParent(location)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to resolve location %s", location)
	}

	// Target and link living in the same directory is almost certainly a
	// caller mistake (e.g. linking a directory into itself).
	if paths.Parent(resolvedTarget) == paths.Parent(resolvedLocation) {
		return nil, errors.Newf(errors.ErrSelfLink,
			"refusing degenerate self-referential link: %s and %s share a parent directory",
			resolvedTarget, resolvedLocation).
			WithDetail("target", resolvedTarget).
			WithDetail("location", resolvedLocation)
	}

	state, err := Inspect(l.fs, location)
	if err != nil {
		return nil, err
	}

	result := &types.LinkResult{Target: resolvedTarget, Location: location}

	switch state.Kind {
	case types.StateDirectory:
		return nil, errors.Newf(errors.ErrDestIsDir,
			"link location %s is a directory; refusing to replace it", location)

	case types.StateSymlink:
		current := state.LinkTarget
		if !filepath.IsAbs(current) {
			current = filepath.Join(filepath.Dir(location), current)
		}
		resolvedCurrent, err := paths.Resolve(current)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "failed to resolve existing link %s", location)
		}
		if resolvedCurrent == resolvedTarget {
			l.logger.Debug().
				Str("location", location).
				Str("target", resolvedTarget).
				Msg("Already a correct symlink, making no changes")
			result.Action = types.ActionUnchanged
			return result, nil
		}

		l.logger.Info().
			Str("location", location).
			Str("current", resolvedCurrent).
			Str("target", resolvedTarget).
			Msg("Replacing symlink with wrong target")
		result.Action = types.ActionReplaced
		if !l.dryRun {
			// Remove the link itself, never its referent.
			if err := l.fs.Remove(location); err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to remove symlink %s", location)
			}
		}

	case types.StateRegular:
		l.logger.Info().
			Str("location", location).
			Str("target", resolvedTarget).
			Msg("Backing up existing file before linking")
		result.Action = types.ActionBackedUp
		if !l.dryRun {
			backupPath, err := l.saver.Save(location)
			if err != nil {
				// The symlink must not be created after a failed backup.
				return nil, err
			}
			result.BackupPath = backupPath
		}

	case types.StateAbsent:
		result.Action = types.ActionCreated
	}

	if l.dryRun {
		l.logger.Info().
			Str("location", location).
			Str("target", resolvedTarget).
			Str("action", string(result.Action)).
			Msg("Dry run, skipping link creation")
		return result, nil
	}

	if err := l.fs.MkdirAll(filepath.Dir(location), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent directories for %s", location)
	}

	l.logger.Info().
		Str("location", location).
		Str("target", resolvedTarget).
		Msg("Pointing link at target")
	if err := l.fs.Symlink(resolvedTarget, location); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create symlink %s -> %s", location, resolvedTarget)
	}

	return result, nil
}
