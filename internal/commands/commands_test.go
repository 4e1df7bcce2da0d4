package commands_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/coamigrate/internal/commands"
)

// runCoamigrate executes the CLI in-process and returns stdout and stderr combined.
func runCoamigrate(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := commands.NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// newWorkspace initializes a workspace without git in a temp dir.
func newWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runCoamigrate(t, "init", dir, "--name", "Test Migration", "--no-git")
	require.NoError(t, err)
	return dir
}

// copyTestdata copies a file from testdata into the workspace input dir.
func copyTestdata(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	dst := filepath.Join(dir, "input", name)
	require.NoError(t, os.WriteFile(dst, data, 0o644))
	return dst
}

func gitLog(t *testing.T, dir, format string) string {
	t.Helper()
	log := exec.Command("git", "log", "--format="+format)
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	return string(out)
}
