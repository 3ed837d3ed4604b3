package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv points HOME and XDG_CONFIG_HOME at a scratch directory
// and clears mxapplist environment overrides.
func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("MXAPPLIST_DATABASE", "")
	t.Setenv("MXAPPLIST_DEVICE", "")
	return home
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := isolateEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	host, _ := os.Hostname()
	assert.Equal(t, host, cfg.Device)
	assert.Equal(t, filepath.Join(home, "applist.db"), cfg.Database)
	assert.True(t, cfg.Sources.Flatpak.Enabled)
	assert.Equal(t, "flatpak", cfg.Sources.Flatpak.Command)
	assert.True(t, cfg.Sources.Pacman.Enabled)
	assert.Equal(t, "pacman", cfg.Sources.Pacman.Command)
	assert.True(t, cfg.Sources.Pacman.ExplicitOnly)
}

func TestLoad_FileOverrides(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, `
device: workstation
database: /tmp/apps.db
sources:
  flatpak:
    enabled: false
  pacman:
    command: paru
    explicit_only: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "workstation", cfg.Device)
	assert.Equal(t, "/tmp/apps.db", cfg.Database)
	assert.False(t, cfg.Sources.Flatpak.Enabled)
	assert.Equal(t, "paru", cfg.Sources.Pacman.Command)
	assert.False(t, cfg.Sources.Pacman.ExplicitOnly)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, "device: laptop\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "laptop", cfg.Device)
	assert.True(t, cfg.Sources.Flatpak.Enabled)
	assert.True(t, cfg.Sources.Pacman.Enabled)
	assert.Equal(t, "pacman", cfg.Sources.Pacman.Command)
	assert.True(t, cfg.Sources.Pacman.ExplicitOnly)
}

func TestLoad_DefaultPathUsed(t *testing.T) {
	home := isolateEnv(t)

	dir := filepath.Join(home, ".config", "mxapplist")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.yaml"), []byte("device: fromfile\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.Device)
}

func TestLoad_MissingDefaultPathOK(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Sources.Flatpak.Enabled)
}

func TestLoad_MissingExplicitPathFails(t *testing.T) {
	isolateEnv(t)

	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_EmptyFile(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Sources.Pacman.Enabled)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, "databse: /tmp/apps.db\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "databse")
}

func TestLoad_BadPacmanCommandRejected(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, `
sources:
  pacman:
    command: apt
`)

	_, err := Load(path)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, err.Error(), "command")
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("MXAPPLIST_DATABASE", "/tmp/env.db")
	t.Setenv("MXAPPLIST_DEVICE", "envbox")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.Database)
	assert.Equal(t, "envbox", cfg.Device)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	isolateEnv(t)
	t.Setenv("MXAPPLIST_DEVICE", "envbox")
	path := writeConfig(t, "device: filebox\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "envbox", cfg.Device)
}

func TestDefaultPath(t *testing.T) {
	home := isolateEnv(t)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "mxapplist", "config.yaml"), path)
}

func TestDefaultDatabasePath(t *testing.T) {
	home := isolateEnv(t)

	path, err := DefaultDatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "applist.db"), path)
}
