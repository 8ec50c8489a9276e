package action

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func script(t *testing.T, path, body string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
}

func TestWithDirRelativePath(t *testing.T) {
	tempDir := t.TempDir()
	frontendDir := filepath.Join(tempDir, "frontend")
	require.NoError(t, os.MkdirAll(frontendDir, 0o755))

	script(t, filepath.Join(tempDir, "bin", "test-script"), "echo 'success'")

	// relative executables resolve against the current dir, not the WithDir target
	t.Chdir(tempDir)

	runner, err := Cmd(context.Background(), "bin/test-script", WithDir("frontend"))
	require.NoError(t, err)

	expectedPath := filepath.Join(tempDir, "bin", "test-script")
	assert.Equal(t, expectedPath, runner.Executable)
	assert.Equal(t, expectedPath, runner.cmd.Path)
	assert.Equal(t, frontendDir, runner.cmd.Dir)
}

func TestWithDirAbsolutePath(t *testing.T) {
	runner, err := Cmd(context.Background(), "/bin/echo", WithDir("/tmp"))
	require.NoError(t, err)

	// Absolute paths should remain unchanged
	assert.Equal(t, "/bin/echo", runner.Executable)
	assert.Equal(t, "/tmp", runner.cmd.Dir)
}

func TestWithDirNoDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("echo is a shell builtin on windows")
	}

	runner, err := Cmd(context.Background(), "echo")
	require.NoError(t, err)

	// bare names are looked up in PATH
	assert.True(t, filepath.IsAbs(runner.Executable), "expected absolute path, got %q", runner.Executable)
	assert.Empty(t, runner.cmd.Dir)
}

func TestWithArgs(t *testing.T) {
	runner, err := Cmd(context.Background(), "/bin/regolith", WithArgs("config", "resolvers", "--append", "a"))
	require.NoError(t, err)

	assert.Equal(t, []string{"config", "resolvers", "--append", "a"}, runner.Arguments)
	assert.Equal(t, []string{"/bin/regolith", "config", "resolvers", "--append", "a"}, runner.cmd.Args)
}

func TestWithEnv(t *testing.T) {
	runner, err := Cmd(context.Background(), "/bin/true", WithEnv("FOO=bar", "EMPTY="))
	require.NoError(t, err)
	assert.Contains(t, runner.cmd.Env, "FOO=bar")
	assert.Contains(t, runner.cmd.Env, "EMPTY=")

	_, err = Cmd(context.Background(), "/bin/true", WithEnv("INVALID"))
	assert.ErrorContains(t, err, "invalid env format")
}

func TestWithDirExecutionIntegration(t *testing.T) {
	tempDir := t.TempDir()
	workDir := filepath.Join(tempDir, "work")
	require.NoError(t, os.MkdirAll(workDir, 0o755))

	script(t, filepath.Join(tempDir, "bin", "pwd-script"), "pwd")

	t.Chdir(tempDir)

	var out bytes.Buffer
	err := Run(context.Background(), "bin/pwd-script", WithDir("work"), WithoutNoise(), WithStdOut(&out))
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(workDir)
	require.NoError(t, err)
	assert.Contains(t, []string{workDir, resolved}, strings.TrimSpace(out.String()))
}

func TestRunFailure(t *testing.T) {
	tempDir := t.TempDir()
	failing := filepath.Join(tempDir, "failing")
	script(t, failing, "exit 3")

	err := Run(context.Background(), failing, WithArgs("config"), WithoutNoise())
	require.Error(t, err)

	var execerr *ExecError
	require.True(t, errors.As(err, &execerr))
	assert.Equal(t, failing, execerr.Executable)
	assert.Equal(t, []string{"config"}, execerr.Arguments)
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestRunMissingExecutable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "regolith")

	err := Run(context.Background(), missing, WithoutNoise())

	var execerr *ExecError
	require.True(t, errors.As(err, &execerr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
