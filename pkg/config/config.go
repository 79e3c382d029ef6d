// Package config loads symgr's optional configuration file. Configuration
// is a single TOML file under the XDG config directory, with a couple of
// environment variable overrides; symgr works with no config file at all.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/symgr/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigFile overrides the config file location
	EnvConfigFile = "SYMGR_CONFIG"

	// EnvBackupCommand overrides the backup command
	EnvBackupCommand = "SYMGR_BACKUP_COMMAND"

	// EnvIgnoreCheck enables or disables the VCS ignore check ("true"/"false")
	EnvIgnoreCheck = "SYMGR_IGNORE_CHECK"
)

// DefaultSystemFiles are version-control metadata names that are never
// mirrored, regardless of configuration.
var DefaultSystemFiles = []string{".git", ".gitignore"}

// Config holds the user-tunable settings.
type Config struct {
	// SystemFiles are additional base names excluded from tree walks,
	// on top of DefaultSystemFiles.
	SystemFiles []string `toml:"system_files"`

	// BackupCommand, when set, names an external utility invoked as
	// `<command> <path>` instead of the built-in timestamped rename.
	BackupCommand string `toml:"backup_command"`

	// IgnoreCheck controls whether the VCS ignore oracle is consulted
	// during tree walks. Defaults to true.
	IgnoreCheck bool `toml:"ignore_check"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		IgnoreCheck: true,
	}
}

// Load reads the config file if one exists and applies environment
// overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path := configFilePath()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
		}
	case os.IsNotExist(err):
		// No config file: defaults apply.
	default:
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file %s", path)
	}

	applyEnv(cfg)
	return cfg, nil
}

// AllSystemFiles returns the full exclusion set: the built-in
// version-control names plus any configured additions.
func (c *Config) AllSystemFiles() []string {
	names := make([]string, 0, len(DefaultSystemFiles)+len(c.SystemFiles))
	names = append(names, DefaultSystemFiles...)
	names = append(names, c.SystemFiles...)
	return names
}

func configFilePath() string {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path
	}
	return filepath.Join(xdg.ConfigHome, "symgr", "config.toml")
}

func applyEnv(cfg *Config) {
	if cmd := os.Getenv(EnvBackupCommand); cmd != "" {
		cfg.BackupCommand = cmd
	}
	if v := os.Getenv(EnvIgnoreCheck); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.IgnoreCheck = b
		}
	}
}
