package status_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/symgr/pkg/commands/status"
	"github.com/arthur-debert/symgr/pkg/ignore"
	"github.com/arthur-debert/symgr/pkg/testutil"
)

func TestStatus_Classification(t *testing.T) {
	tmp := t.TempDir()
	tree := testutil.CreateDir(t, tmp, "dotfiles")
	live := testutil.CreateDir(t, tmp, "home")

	// linked: correct symlink in place
	linked := testutil.CreateFile(t, tree, "bashrc", "x")
	testutil.CreateSymlink(t, linked, filepath.Join(live, "bashrc"))

	// wrong target: symlink pointing elsewhere
	testutil.CreateFile(t, tree, "vimrc", "x")
	other := testutil.CreateFile(t, tmp, "elsewhere/vimrc", "y")
	testutil.CreateSymlink(t, other, filepath.Join(live, "vimrc"))

	// missing: nothing at the live path
	testutil.CreateFile(t, tree, "profile", "x")

	// conflicts: a file and a directory in the way
	testutil.CreateFile(t, tree, "gitconfig", "x")
	testutil.CreateFile(t, live, "gitconfig", "unmanaged")
	testutil.CreateFile(t, tree, "sub/rc", "x")
	testutil.CreateFile(t, live, "sub/rc/oops", "blocks the path")

	result, err := status.Status(status.StatusOptions{
		LiveDir: live,
		TreeDir: tree,
		Oracle:  ignore.None,
	})
	require.NoError(t, err)

	states := map[string]status.State{}
	for _, e := range result.Entries {
		rel, err := filepath.Rel(tree, e.TrackedPath)
		require.NoError(t, err)
		states[rel] = e.State
	}

	assert.Equal(t, status.StateLinked, states["bashrc"])
	assert.Equal(t, status.StateWrongTarget, states["vimrc"])
	assert.Equal(t, status.StateMissing, states["profile"])
	assert.Equal(t, status.StateConflictFile, states["gitconfig"])
	assert.Equal(t, status.StateConflictDir, states[filepath.Join("sub", "rc")])
}

func TestStatus_WrongTargetReportsCurrent(t *testing.T) {
	tmp := t.TempDir()
	tree := testutil.CreateDir(t, tmp, "dotfiles")
	live := testutil.CreateDir(t, tmp, "home")

	testutil.CreateFile(t, tree, "vimrc", "x")
	other := testutil.CreateFile(t, tmp, "elsewhere/vimrc", "y")
	testutil.CreateSymlink(t, other, filepath.Join(live, "vimrc"))

	result, err := status.Status(status.StatusOptions{
		LiveDir: live,
		TreeDir: tree,
		Oracle:  ignore.None,
	})
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	entry := result.Entries[0]
	assert.Equal(t, status.StateWrongTarget, entry.State)

	otherResolved, err := filepath.EvalSymlinks(other)
	require.NoError(t, err)
	assert.Equal(t, otherResolved, entry.CurrentTarget)
}

func TestStatus_SkipsSystemAndIgnoredFiles(t *testing.T) {
	tmp := t.TempDir()
	tree := testutil.CreateDir(t, tmp, "dotfiles")
	live := testutil.CreateDir(t, tmp, "home")

	testutil.CreateFile(t, tree, "bashrc", "x")
	testutil.CreateFile(t, tree, ".gitignore", "*.key")
	testutil.CreateFile(t, tree, ".git/config", "[core]")
	testutil.CreateFile(t, tree, "secret.key", "x")

	result, err := status.Status(status.StatusOptions{
		LiveDir: live,
		TreeDir: tree,
		Oracle:  ignore.NewStatic("secret.key"),
	})
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, filepath.Join(tree, "bashrc"), result.Entries[0].TrackedPath)
}

func TestStatus_DoesNotMutate(t *testing.T) {
	tmp := t.TempDir()
	tree := testutil.CreateDir(t, tmp, "dotfiles")
	live := testutil.CreateDir(t, tmp, "home")

	testutil.CreateFile(t, tree, "bashrc", "x")

	_, err := status.Status(status.StatusOptions{
		LiveDir: live,
		TreeDir: tree,
		Oracle:  ignore.None,
	})
	require.NoError(t, err)

	entries, err := filepath.Glob(filepath.Join(live, "*"))
	require.NoError(t, err)
	assert.Empty(t, entries, "status must not create anything")
}
