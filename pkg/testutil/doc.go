// Package testutil provides filesystem fixtures and assertions shared by
// symgr's tests. All helpers operate on real directories (use t.TempDir),
// since symlink behavior is the thing under test.
package testutil
