package ignore_test

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/symgr/pkg/ignore"
	"github.com/arthur-debert/symgr/pkg/testutil"
)

func TestNone(t *testing.T) {
	ignored, err := ignore.None.IsIgnored("/anything/at/all")
	require.NoError(t, err)
	assert.False(t, ignored)
}

func TestStatic(t *testing.T) {
	oracle := ignore.NewStatic("secret.key", ".env")

	ignored, err := oracle.IsIgnored("/home/user/dotfiles/secret.key")
	require.NoError(t, err)
	assert.True(t, ignored)

	ignored, err = oracle.IsIgnored("/home/user/dotfiles/bashrc")
	require.NoError(t, err)
	assert.False(t, ignored)
}

func TestGit_RespectsIgnoreRules(t *testing.T) {
	requireGit(t)

	tmp := t.TempDir()
	runGit(t, tmp, "init", "-q")
	testutil.CreateFile(t, tmp, ".gitignore", "*.key\n")
	ignoredFile := testutil.CreateFile(t, tmp, "secret.key", "x")
	trackedFile := testutil.CreateFile(t, tmp, "bashrc", "x")

	oracle := ignore.NewGit()

	ignored, err := oracle.IsIgnored(ignoredFile)
	require.NoError(t, err)
	assert.True(t, ignored)

	ignored, err = oracle.IsIgnored(trackedFile)
	require.NoError(t, err)
	assert.False(t, ignored)
}

func TestGit_OutsideRepositoryMeansNotIgnored(t *testing.T) {
	requireGit(t)

	// A plain directory: check-ignore exits 128, which degrades to
	// "not ignored" rather than failing the walk.
	tmp := t.TempDir()
	file := testutil.CreateFile(t, tmp, "bashrc", "x")

	ignored, err := ignore.NewGit().IsIgnored(file)
	require.NoError(t, err)
	assert.False(t, ignored)
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}
