package bless_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/symgr/pkg/commands/bless"
	"github.com/arthur-debert/symgr/pkg/errors"
	"github.com/arthur-debert/symgr/pkg/testutil"
)

func TestBless_RoundTrip(t *testing.T) {
	tmp := t.TempDir()
	live := testutil.CreateFile(t, tmp, "home/.gitconfig", "user.name = Test")
	tree := testutil.CreateDir(t, tmp, "dotfiles/git")

	result, err := bless.Bless(bless.BlessOptions{
		FromFile: live,
		ToDir:    tree,
	})

	require.NoError(t, err)

	// The content now lives in the tree under the original base name.
	tracked := filepath.Join(tree, ".gitconfig")
	assert.Equal(t, tracked, result.TrackedPath)
	assert.Equal(t, "user.name = Test", testutil.FileContent(t, tracked))

	// The live path is a symlink back to the tracked copy.
	testutil.AssertSymlinkTo(t, live, tracked)

	// The original content also survives as a backup next to the link.
	require.NotEmpty(t, result.BackupPath)
	assert.Equal(t, filepath.Join(tmp, "home"), filepath.Dir(result.BackupPath))
	assert.Equal(t, "user.name = Test", testutil.FileContent(t, result.BackupPath))
}

func TestBless_PreservesMode(t *testing.T) {
	tmp := t.TempDir()
	live := testutil.CreateFile(t, tmp, "home/bin/script", "#!/bin/sh\n")
	require.NoError(t, os.Chmod(live, 0755))
	tree := testutil.CreateDir(t, tmp, "dotfiles/bin")

	result, err := bless.Bless(bless.BlessOptions{
		FromFile: live,
		ToDir:    tree,
	})

	require.NoError(t, err)
	info, err := os.Stat(result.TrackedPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestBless_ExistingTrackedFileBackedUp(t *testing.T) {
	tmp := t.TempDir()
	live := testutil.CreateFile(t, tmp, "home/.vimrc", "new config")
	tree := testutil.CreateDir(t, tmp, "dotfiles/vim")
	testutil.CreateFile(t, tree, ".vimrc", "stale tracked copy")

	result, err := bless.Bless(bless.BlessOptions{
		FromFile: live,
		ToDir:    tree,
	})

	require.NoError(t, err)
	assert.Equal(t, "new config", testutil.FileContent(t, result.TrackedPath))

	// The stale tracked copy was moved aside, not lost.
	backups := testutil.FindBackups(t, tree, ".vimrc")
	require.Len(t, backups, 1)
	assert.Equal(t, "stale tracked copy", testutil.FileContent(t, backups[0]))
}

func TestBless_MissingSource(t *testing.T) {
	tmp := t.TempDir()

	_, err := bless.Bless(bless.BlessOptions{
		FromFile: filepath.Join(tmp, "nope"),
		ToDir:    testutil.CreateDir(t, tmp, "dotfiles"),
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestBless_DirectorySource(t *testing.T) {
	tmp := t.TempDir()
	dir := testutil.CreateDir(t, tmp, "home/.config")

	_, err := bless.Bless(bless.BlessOptions{
		FromFile: dir,
		ToDir:    testutil.CreateDir(t, tmp, "dotfiles"),
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgs))
}

func TestBless_CopyFailureLeavesOriginal(t *testing.T) {
	tmp := t.TempDir()
	live := testutil.CreateFile(t, tmp, "home/.vimrc", "precious")

	// The destination "directory" is a file, so the copy can never land.
	badTree := testutil.CreateFile(t, tmp, "not-a-dir", "x")

	_, err := bless.Bless(bless.BlessOptions{
		FromFile: live,
		ToDir:    badTree,
	})

	require.Error(t, err)

	// The original is untouched: still a regular file with its content.
	assert.False(t, testutil.IsSymlink(t, live))
	assert.Equal(t, "precious", testutil.FileContent(t, live))
}

func TestBless_DryRunDoesNotMutate(t *testing.T) {
	tmp := t.TempDir()
	live := testutil.CreateFile(t, tmp, "home/.vimrc", "content")
	tree := testutil.CreateDir(t, tmp, "dotfiles")

	result, err := bless.Bless(bless.BlessOptions{
		FromFile: live,
		ToDir:    tree,
		DryRun:   true,
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tree, ".vimrc"), result.TrackedPath)

	assert.False(t, testutil.IsSymlink(t, live))
	_, lerr := os.Lstat(result.TrackedPath)
	assert.True(t, os.IsNotExist(lerr), "dry run must not copy")
}
