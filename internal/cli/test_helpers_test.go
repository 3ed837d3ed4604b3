package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupEnv isolates a test from the host machine: scratch HOME and
// config dir, no mxapplist environment overrides, and an empty PATH
// directory so only fake binaries installed by the test are found.
func setupEnv(t *testing.T) (home, binDir string) {
	t.Helper()
	home = t.TempDir()
	binDir = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("MXAPPLIST_DATABASE", "")
	t.Setenv("MXAPPLIST_DEVICE", "")
	t.Setenv("PATH", binDir)
	return home, binDir
}

// writeFakeBin installs an executable shell script into dir.
func writeFakeBin(t *testing.T, dir, name, script string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
}

// installFlatpak installs a fake flatpak listing two applications.
func installFlatpak(t *testing.T, binDir string) {
	writeFakeBin(t, binDir, "flatpak",
		`printf 'org.mozilla.firefox\tFirefox\t128.0\n'
printf 'org.videolan.VLC\tVLC\t3.0.21\n'`)
}

// installPacman installs a fake pacman listing two packages.
func installPacman(t *testing.T, binDir string) {
	writeFakeBin(t, binDir, "pacman",
		`printf 'vim 9.1.0-1\n'
printf 'zsh 5.9-5\n'`)
}

// executeCommand runs the CLI with args, feeding input on stdin, and
// returns captured stdout and stderr along with the execution error.
func executeCommand(t *testing.T, input string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}
