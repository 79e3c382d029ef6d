// Package status reports how a live directory relates to a repository
// tree without touching either: for each tracked file, is the live path a
// correct link, a wrong link, missing, or occupied by something else?
package status

import (
	"path/filepath"

	"github.com/arthur-debert/symgr/pkg/config"
	"github.com/arthur-debert/symgr/pkg/errors"
	"github.com/arthur-debert/symgr/pkg/filesystem"
	"github.com/arthur-debert/symgr/pkg/ignore"
	"github.com/arthur-debert/symgr/pkg/logging"
	"github.com/arthur-debert/symgr/pkg/paths"
	"github.com/arthur-debert/symgr/pkg/symlink"
	"github.com/arthur-debert/symgr/pkg/types"
)

// State classifies one tracked file's live counterpart.
type State string

const (
	// StateLinked means the live path is a symlink to the tracked file.
	StateLinked State = "linked"
	// StateWrongTarget means the live path is a symlink elsewhere.
	StateWrongTarget State = "wrong target"
	// StateMissing means nothing exists at the live path.
	StateMissing State = "missing"
	// StateConflictFile means a regular file occupies the live path.
	StateConflictFile State = "file in the way"
	// StateConflictDir means a directory occupies the live path.
	StateConflictDir State = "directory in the way"
)

// Entry is the status of one tracked file.
type Entry struct {
	// TrackedPath is the file in the repository tree.
	TrackedPath string
	// LivePath is its mirrored location in the live directory.
	LivePath string
	State    State
	// CurrentTarget is set when State is StateWrongTarget.
	CurrentTarget string
}

// Result is the status of a whole tree.
type Result struct {
	LiveDir string
	TreeDir string
	Entries []Entry
}

// StatusOptions holds options for the status command.
type StatusOptions struct {
	// LiveDir is the directory expected to hold the symlinks.
	LiveDir string
	// TreeDir is the repository tree of tracked files.
	TreeDir string
	// SystemFiles are base names never mirrored.
	SystemFiles []string
	// Oracle is the ignore check. Defaults to the git oracle.
	Oracle ignore.Oracle
	// FileSystem allows injecting a filesystem for testing.
	FileSystem types.FS
}

// Status walks TreeDir and reports the state of every eligible file's
// mirror in LiveDir. It performs no mutation.
func Status(opts StatusOptions) (*Result, error) {
	logger := logging.GetLogger("commands.status")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	oracle := opts.Oracle
	if oracle == nil {
		oracle = ignore.NewGit()
	}
	systemFiles := opts.SystemFiles
	if systemFiles == nil {
		systemFiles = config.DefaultSystemFiles
	}
	set := make(map[string]bool, len(systemFiles))
	for _, n := range systemFiles {
		set[n] = true
	}

	info, err := fs.Stat(opts.TreeDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound, "tree directory %s", opts.TreeDir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidArgs, "tree %s is not a directory", opts.TreeDir)
	}

	result := &Result{LiveDir: opts.LiveDir, TreeDir: opts.TreeDir}
	if err := statusWalk(fs, oracle, set, opts.TreeDir, opts.LiveDir, result); err != nil {
		return nil, err
	}

	logger.Debug().Int("entries", len(result.Entries)).Msg("Status computed")
	return result, nil
}

func statusWalk(fs types.FS, oracle ignore.Oracle, systemFiles map[string]bool, treeDir, liveDir string, result *Result) error {
	entries, err := fs.ReadDir(treeDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", treeDir)
	}

	for _, entry := range entries {
		trackedPath := filepath.Join(treeDir, entry.Name())
		if systemFiles[entry.Name()] {
			continue
		}
		ignored, err := oracle.IsIgnored(trackedPath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIgnoreCheck, "ignore check failed for %s", trackedPath)
		}
		if ignored {
			continue
		}

		livePath := filepath.Join(liveDir, entry.Name())
		if entry.IsDir() {
			if err := statusWalk(fs, oracle, systemFiles, trackedPath, livePath, result); err != nil {
				return err
			}
			continue
		}

		e, err := classify(fs, trackedPath, livePath)
		if err != nil {
			return err
		}
		result.Entries = append(result.Entries, e)
	}

	return nil
}

func classify(fs types.FS, trackedPath, livePath string) (Entry, error) {
	entry := Entry{TrackedPath: trackedPath, LivePath: livePath}

	state, err := symlink.Inspect(fs, livePath)
	if err != nil {
		return entry, err
	}

	switch state.Kind {
	case types.StateAbsent:
		entry.State = StateMissing
	case types.StateRegular:
		entry.State = StateConflictFile
	case types.StateDirectory:
		entry.State = StateConflictDir
	case types.StateSymlink:
		current := state.LinkTarget
		if !filepath.IsAbs(current) {
			current = filepath.Join(filepath.Dir(livePath), current)
		}
		resolvedCurrent, err := paths.Resolve(current)
		if err != nil {
			return entry, errors.Wrapf(err, errors.ErrInternal, "failed to resolve link %s", livePath)
		}
		resolvedTracked, err := paths.Resolve(trackedPath)
		if err != nil {
			return entry, errors.Wrapf(err, errors.ErrInternal, "failed to resolve %s", trackedPath)
		}
		if resolvedCurrent == resolvedTracked {
			entry.State = StateLinked
		} else {
			entry.State = StateWrongTarget
			entry.CurrentTarget = resolvedCurrent
		}
	}

	return entry, nil
}
