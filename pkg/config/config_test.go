package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/symgr/pkg/config"
	"github.com/arthur-debert/symgr/pkg/errors"
	"github.com/arthur-debert/symgr/pkg/testutil"
)

func TestLoad_NoConfigFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(config.EnvConfigFile, tmp+"/does-not-exist.toml")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.True(t, cfg.IgnoreCheck)
	assert.Empty(t, cfg.BackupCommand)
	assert.Equal(t, config.DefaultSystemFiles, cfg.AllSystemFiles())
}

func TestLoad_ConfigFile(t *testing.T) {
	tmp := t.TempDir()
	path := testutil.CreateFile(t, tmp, "config.toml", `
system_files = [".hg", ".hgignore"]
backup_command = "bak"
ignore_check = false
`)
	t.Setenv(config.EnvConfigFile, path)

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.False(t, cfg.IgnoreCheck)
	assert.Equal(t, "bak", cfg.BackupCommand)

	all := cfg.AllSystemFiles()
	assert.Contains(t, all, ".git")
	assert.Contains(t, all, ".gitignore")
	assert.Contains(t, all, ".hg")
	assert.Contains(t, all, ".hgignore")
}

func TestLoad_InvalidToml(t *testing.T) {
	tmp := t.TempDir()
	path := testutil.CreateFile(t, tmp, "config.toml", "system_files = not valid")
	t.Setenv(config.EnvConfigFile, path)

	_, err := config.Load()

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmp := t.TempDir()
	path := testutil.CreateFile(t, tmp, "config.toml", `backup_command = "bak"`)
	t.Setenv(config.EnvConfigFile, path)
	t.Setenv(config.EnvBackupCommand, "other-bak")
	t.Setenv(config.EnvIgnoreCheck, "false")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "other-bak", cfg.BackupCommand)
	assert.False(t, cfg.IgnoreCheck)
}
