// Package ignore provides the ignore oracle consulted during tree walks:
// "is this path excluded by the repository's ignore rules?". The production
// oracle shells out to git check-ignore; in-process oracles exist for tests
// and for running with the check disabled.
package ignore

import (
	"os/exec"
	"path/filepath"

	"github.com/arthur-debert/symgr/pkg/logging"
)

// Oracle answers whether a path is excluded by ignore rules.
type Oracle interface {
	IsIgnored(path string) (bool, error)
}

// None is an Oracle that ignores nothing.
var None Oracle = noneOracle{}

type noneOracle struct{}

func (noneOracle) IsIgnored(string) (bool, error) { return false, nil }

// gitOracle asks git check-ignore.
type gitOracle struct{}

// NewGit returns an Oracle backed by `git check-ignore -q`.
//
// Exit status 0 means ignored and 1 means not ignored. Any other failure
// (the path is not inside a git repository, or git is missing entirely)
// is treated as "not ignored" so that symgr keeps working on plain
// directories; the degraded check is logged at warn level.
func NewGit() Oracle {
	return gitOracle{}
}

func (gitOracle) IsIgnored(path string) (bool, error) {
	logger := logging.GetLogger("ignore")

	cmd := exec.Command("git", "check-ignore", "-q", "--", path)
	// Run relative to the file so the right repository is consulted.
	cmd.Dir = filepath.Dir(path)

	err := cmd.Run()
	if err == nil {
		return true, nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		if exitErr.ExitCode() == 1 {
			return false, nil
		}
		logger.Warn().
			Str("path", path).
			Int("exit_code", exitErr.ExitCode()).
			Msg("git check-ignore failed, treating path as not ignored")
		return false, nil
	}

	logger.Warn().
		Err(err).
		Str("path", path).
		Msg("could not run git check-ignore, treating path as not ignored")
	return false, nil
}

// staticOracle ignores a fixed set of base names. Used in tests.
type staticOracle struct {
	names map[string]bool
}

// NewStatic returns an Oracle that ignores any path whose base name is in
// the given set.
func NewStatic(names ...string) Oracle {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return &staticOracle{names: set}
}

func (s *staticOracle) IsIgnored(path string) (bool, error) {
	return s.names[filepath.Base(path)], nil
}
