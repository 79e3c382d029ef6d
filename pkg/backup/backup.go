// Package backup provides the backup saver used when a link location is
// occupied by a regular file: the file is moved out of the way under a
// timestamped name before the symlink is created. The built-in saver is an
// atomic rename; an external utility can be configured instead.
package backup

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/arthur-debert/symgr/pkg/errors"
	"github.com/arthur-debert/symgr/pkg/logging"
	"github.com/arthur-debert/symgr/pkg/types"
)

// TimestampFormat is the suffix format for built-in backups.
const TimestampFormat = "20060102-150405"

// Saver moves an existing file out of the way and reports where it went.
// When Save returns without error the original content must be preserved
// at the returned path.
type Saver interface {
	Save(path string) (backupPath string, err error)
}

// renameSaver renames the file in place with a timestamped suffix.
type renameSaver struct {
	fs  types.FS
	now func() time.Time
}

// NewRename returns the built-in Saver: an atomic rename of path to
// path.<timestamp>.bak in the same directory.
func NewRename(fs types.FS) Saver {
	return &renameSaver{fs: fs, now: time.Now}
}

func (s *renameSaver) Save(path string) (string, error) {
	logger := logging.GetLogger("backup")

	stamp := s.now().Format(TimestampFormat)
	backupPath := fmt.Sprintf("%s.%s.bak", path, stamp)

	// Same-second reruns must not clobber an earlier backup.
	for n := 1; ; n++ {
		if _, err := s.fs.Lstat(backupPath); os.IsNotExist(err) {
			break
		}
		backupPath = fmt.Sprintf("%s.%s-%d.bak", path, stamp, n)
	}

	if err := s.fs.Rename(path, backupPath); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackupFailed, "failed to back up %s", path)
	}

	logger.Info().Str("path", path).Str("backup", backupPath).Msg("Backed up file")
	return backupPath, nil
}

// commandSaver delegates to an external backup utility.
type commandSaver struct {
	command string
}

// NewCommand returns a Saver that runs `command <path>` and trusts it to
// move the file aside. A nonzero exit is fatal. The utility chooses the
// backup name, so the returned backup path is empty.
func NewCommand(command string) Saver {
	return &commandSaver{command: command}
}

func (s *commandSaver) Save(path string) (string, error) {
	logger := logging.GetLogger("backup")

	cmd := exec.Command(s.command, path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBackupFailed,
			"backup command %q failed for %s: %s", s.command, path, string(out))
	}

	logger.Info().Str("path", path).Str("command", s.command).Msg("Backed up file via external command")
	return "", nil
}
