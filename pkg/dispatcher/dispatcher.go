// Package dispatcher is the do-what-I-mean entry point from the CLI layer:
// it inspects the filesystem types of the two path arguments and decides
// which operation applies.
//
//	from        to          action
//	file        directory   bless from into to
//	directory   directory   mirror tree to into from
//	file/absent file        link from -> to
//	directory   file        invalid
//	absent      non-file    invalid
package dispatcher

import (
	"os"

	"github.com/arthur-debert/symgr/pkg/backup"
	"github.com/arthur-debert/symgr/pkg/commands/bless"
	"github.com/arthur-debert/symgr/pkg/commands/link"
	"github.com/arthur-debert/symgr/pkg/errors"
	"github.com/arthur-debert/symgr/pkg/filesystem"
	"github.com/arthur-debert/symgr/pkg/ignore"
	"github.com/arthur-debert/symgr/pkg/logging"
	"github.com/arthur-debert/symgr/pkg/paths"
	"github.com/arthur-debert/symgr/pkg/symlink"
	"github.com/arthur-debert/symgr/pkg/types"
)

// CommandType identifies which operation the dispatcher chose.
type CommandType string

const (
	CommandLinkOne  CommandType = "link"
	CommandLinkTree CommandType = "link-tree"
	CommandBless    CommandType = "bless"
)

// Options contains everything the dispatcher needs to choose and run an
// operation.
type Options struct {
	// From and To are the two CLI path arguments.
	From string
	To   string

	// Bless forces the bless operation instead of type inference.
	Bless bool
	// DryRun reports actions without mutating the filesystem.
	DryRun bool

	// SystemFiles, Oracle and Saver configure the collaborators; each has
	// a production default when unset.
	SystemFiles []string
	Oracle      ignore.Oracle
	Saver       backup.Saver

	// FileSystem allows injecting a filesystem for testing.
	FileSystem types.FS
}

// Result reports which operation ran and its outcome. Exactly one of the
// result fields is set, matching Command.
type Result struct {
	Command CommandType
	Link    *types.LinkResult
	Tree    *types.TreeResult
	Bless   *types.BlessResult
}

type pathType int

const (
	typeAbsent pathType = iota
	typeFile
	typeDir
)

// Dispatch applies the type-inference table to the two paths and runs the
// chosen operation. Home-relative arguments (~/...) are expanded first.
func Dispatch(opts Options) (*Result, error) {
	logger := logging.GetLogger("dispatcher")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	saver := opts.Saver
	if saver == nil {
		saver = backup.NewRename(fs)
	}

	from := paths.ExpandHome(opts.From)
	to := paths.ExpandHome(opts.To)

	fromType, err := classify(fs, from)
	if err != nil {
		return nil, err
	}
	toType, err := classify(fs, to)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("from", from).
		Str("to", to).
		Bool("bless", opts.Bless).
		Msg("Dispatching")

	if opts.Bless {
		return runBless(fs, saver, from, to, opts.DryRun)
	}

	switch {
	case fromType == typeFile && toType == typeDir:
		return runBless(fs, saver, from, to, opts.DryRun)

	case fromType == typeDir && toType == typeDir:
		// The second argument is the source of truth; the first is the
		// live directory being populated.
		tree, err := link.LinkTree(link.LinkTreeOptions{
			SourceDir:   to,
			DestDir:     from,
			SystemFiles: opts.SystemFiles,
			Oracle:      opts.Oracle,
			Saver:       saver,
			DryRun:      opts.DryRun,
			FileSystem:  fs,
		})
		if err != nil {
			return nil, err
		}
		return &Result{Command: CommandLinkTree, Tree: tree}, nil

	case (fromType == typeFile || fromType == typeAbsent) && toType == typeFile:
		linker := symlink.NewLinker(fs, saver, opts.DryRun)
		res, err := linker.LinkOne(to, from)
		if err != nil {
			return nil, err
		}
		return &Result{Command: CommandLinkOne, Link: res}, nil

	default:
		return nil, errors.Newf(errors.ErrInvalidArgs,
			"cannot infer an operation for %s (%s) and %s (%s)",
			from, typeName(fromType), to, typeName(toType))
	}
}

func runBless(fs types.FS, saver backup.Saver, from, to string, dryRun bool) (*Result, error) {
	res, err := bless.Bless(bless.BlessOptions{
		FromFile:   from,
		ToDir:      to,
		Saver:      saver,
		DryRun:     dryRun,
		FileSystem: fs,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Command: CommandBless, Bless: res}, nil
}

// classify follows symlinks: a symlink to a file counts as a file. A
// dangling symlink counts as a file too, so it can be repointed.
func classify(fs types.FS, path string) (pathType, error) {
	info, err := fs.Stat(path)
	if err == nil {
		if info.IsDir() {
			return typeDir, nil
		}
		return typeFile, nil
	}
	if !os.IsNotExist(err) {
		return typeAbsent, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path)
	}

	if _, lerr := fs.Lstat(path); lerr == nil {
		return typeFile, nil
	}
	return typeAbsent, nil
}

func typeName(t pathType) string {
	switch t {
	case typeFile:
		return "file"
	case typeDir:
		return "directory"
	default:
		return "absent"
	}
}
