package types

import "io/fs"

// FS abstracts the filesystem operations symgr performs, so commands can
// be exercised against a test double or a sandboxed root.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error
	Chmod(name string, mode fs.FileMode) error
}

// PathStateKind classifies what currently occupies a path.
type PathStateKind int

const (
	// StateAbsent means nothing exists at the path.
	StateAbsent PathStateKind = iota
	// StateRegular means a regular file exists at the path.
	StateRegular
	// StateSymlink means the path is itself a symlink (target may dangle).
	StateSymlink
	// StateDirectory means a directory exists at the path.
	StateDirectory
)

// String returns a human-readable name for the state kind.
func (k PathStateKind) String() string {
	switch k {
	case StateAbsent:
		return "absent"
	case StateRegular:
		return "regular file"
	case StateSymlink:
		return "symlink"
	case StateDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// PathState is the observed state of a single path, taken from one lstat
// query. LinkTarget is only meaningful when Kind is StateSymlink.
type PathState struct {
	Kind       PathStateKind
	LinkTarget string
}

// LinkTask pairs a symlink target with the location where the link should
// exist. Tasks are ephemeral: built per file during a walk, never persisted.
type LinkTask struct {
	// Target is the file the symlink should point to.
	Target string
	// Location is where the symlink should be created or verified.
	Location string
}

// LinkAction describes what a link operation did (or would do, in dry-run).
type LinkAction string

const (
	// ActionCreated means a new symlink was created at an empty location.
	ActionCreated LinkAction = "created"
	// ActionReplaced means an existing wrong symlink was removed first.
	ActionReplaced LinkAction = "replaced"
	// ActionBackedUp means a regular file was backed up before linking.
	ActionBackedUp LinkAction = "backed-up"
	// ActionUnchanged means the location was already a correct symlink.
	ActionUnchanged LinkAction = "unchanged"
)

// LinkResult reports the outcome of a single link reconciliation.
type LinkResult struct {
	Target   string
	Location string
	Action   LinkAction
	// BackupPath is set when Action is ActionBackedUp.
	BackupPath string
}

// SkipReason explains why a file in the source tree was not mirrored.
type SkipReason string

const (
	// SkipIgnored means the ignore oracle excluded the file.
	SkipIgnored SkipReason = "ignored"
	// SkipSystemFile means the file is version-control metadata.
	SkipSystemFile SkipReason = "system file"
	// SkipMissing means the link target no longer exists.
	SkipMissing SkipReason = "missing"
)

// SkippedFile records one file left out of a tree walk and why.
type SkippedFile struct {
	Path   string
	Reason SkipReason
}

// TreeResult reports the outcome of mirroring a source tree.
type TreeResult struct {
	SourceDir string
	DestDir   string
	Links     []LinkResult
	Skipped   []SkippedFile
}

// BlessResult reports the outcome of blessing a live file into the tree.
type BlessResult struct {
	// OriginalPath is the live file that was blessed.
	OriginalPath string
	// TrackedPath is where its content now lives inside the tree.
	TrackedPath string
	// BackupPath preserves the original content displaced by the symlink.
	BackupPath string
}
