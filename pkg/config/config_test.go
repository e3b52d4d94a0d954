package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/magma1447/mergerfs-tools/pkg/errors"
	"github.com/magma1447/mergerfs-tools/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config source at an empty temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)
	t.Setenv(paths.EnvConfigFile, "")
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".mergerfs", cfg.Mount.ControlFile)
	assert.Equal(t, "user.mergerfs.allpaths", cfg.Xattr.AllPaths)
	assert.Equal(t, "user.mergerfs.version", cfg.Xattr.Version)
	assert.Equal(t, "user.mergerfs.srcmounts", cfg.Xattr.SrcMounts)
	assert.Equal(t, "rsync", cfg.Transfer.Command)
	assert.Equal(t, []string{"-avlHAXWE", "--numeric-ids", "--progress", "--remove-source-files"}, cfg.Transfer.Args)
	assert.Equal(t, "find", cfg.Prune.Command)
	assert.Equal(t, []string{"-type", "d", "-empty", "-delete"}, cfg.Prune.Args)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("defaults_without_user_file", func(t *testing.T) {
		isolate(t)

		cfg, err := Load(LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("xdg_user_file_overrides_defaults", func(t *testing.T) {
		dir := isolate(t)
		err := os.WriteFile(filepath.Join(dir, paths.ConfigFileName), []byte(`
[transfer]
args = ["-aHAX", "--remove-source-files"]
`), 0644)
		require.NoError(t, err)

		cfg, err := Load(LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"-aHAX", "--remove-source-files"}, cfg.Transfer.Args)
		assert.Equal(t, "rsync", cfg.Transfer.Command, "unset keys keep their defaults")
	})

	t.Run("explicit_file_wins_over_xdg_file", func(t *testing.T) {
		dir := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, paths.ConfigFileName), []byte(`
[prune]
command = "xdg-find"
`), 0644))
		explicit := filepath.Join(t.TempDir(), "custom.toml")
		require.NoError(t, os.WriteFile(explicit, []byte(`
[prune]
command = "gfind"
`), 0644))

		cfg, err := Load(LoadOptions{ConfigFile: explicit})
		require.NoError(t, err)
		assert.Equal(t, "gfind", cfg.Prune.Command)
	})

	t.Run("missing_explicit_file_is_an_error", func(t *testing.T) {
		isolate(t)

		_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "absent.toml")})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("missing_file_from_env_is_an_error", func(t *testing.T) {
		isolate(t)
		t.Setenv(paths.EnvConfigFile, filepath.Join(t.TempDir(), "absent.toml"))

		_, err := Load(LoadOptions{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("invalid_toml_is_a_parse_error", func(t *testing.T) {
		isolate(t)
		bad := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(bad, []byte("[transfer\ncommand ="), 0644))

		_, err := Load(LoadOptions{ConfigFile: bad})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("environment_overrides_file", func(t *testing.T) {
		isolate(t)
		t.Setenv("MERGERFS_CONSOLIDATE_TRANSFER__COMMAND", "/usr/local/bin/rsync")
		t.Setenv("MERGERFS_CONSOLIDATE_MOUNT__CONTROL_FILE", ".pool-ctl")

		cfg, err := Load(LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, "/usr/local/bin/rsync", cfg.Transfer.Command)
		assert.Equal(t, ".pool-ctl", cfg.Mount.ControlFile)
	})

	t.Run("empty_required_value_fails_validation", func(t *testing.T) {
		isolate(t)
		bad := filepath.Join(t.TempDir(), "empty.toml")
		require.NoError(t, os.WriteFile(bad, []byte(`
[xattr]
allpaths = ""
`), 0644))

		_, err := Load(LoadOptions{ConfigFile: bad})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		assert.Equal(t, "xattr.allpaths", errors.GetErrorDetails(err)["key"])
	})
}

func TestValidate_ControlFileMustBeAName(t *testing.T) {
	cfg := Default()
	cfg.Mount.ControlFile = "sub/.mergerfs"

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "transfer.command", envKey("MERGERFS_CONSOLIDATE_TRANSFER__COMMAND"))
	assert.Equal(t, "mount.control_file", envKey("MERGERFS_CONSOLIDATE_MOUNT__CONTROL_FILE"))
	assert.Equal(t, "", envKey("MERGERFS_CONSOLIDATE_CONFIG"))
}

func TestTOML(t *testing.T) {
	out, err := Default().TOML()
	require.NoError(t, err)

	assert.Contains(t, out, "[transfer]")
	assert.Contains(t, out, "control_file = '.mergerfs'")
	assert.Contains(t, out, "--remove-source-files")
}

func TestGetDefaultsContent(t *testing.T) {
	assert.Contains(t, GetDefaultsContent(), "[prune]")
}
