package main

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educats/cli/internal/testutil"
)

var educatsBinary string

func TestMain(m *testing.M) {
	// Build the binary once for all tests
	tmpDir, err := os.MkdirTemp("", "educats-e2e-*")
	if err != nil {
		panic("failed to create temp dir: " + err.Error())
	}

	educatsBinary = filepath.Join(tmpDir, "educats")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	cmd := exec.CommandContext(ctx, "go", "build", "-o", educatsBinary, ".")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		cancel()
		os.RemoveAll(tmpDir)
		panic("failed to build educats binary: " + err.Error())
	}
	cancel()

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

// runEducats runs the binary in workDir and returns its output and exit code.
func runEducats(t *testing.T, workDir string, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, educatsBinary, args...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), "EDUCATS_CONFIG=")

	stdoutBytes, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(stdoutBytes), string(exitErr.Stderr), exitErr.ExitCode()
	}
	require.NoError(t, err)
	return string(stdoutBytes), "", 0
}

func requireUnixTools(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("lifecycle commands use POSIX tools")
	}
	for _, tool := range []string{"touch", "mkdir", "false"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not available", tool)
		}
	}
}

func TestE2E_Help(t *testing.T) {
	stdout, stderr, code := runEducats(t, t.TempDir(), "--help")
	require.Zero(t, code, "stderr: %s", stderr)

	for _, sub := range []string{"install", "uninstall", "reinstall", "build", "rebuild", "list", "config", "version"} {
		assert.Contains(t, stdout, sub)
	}
}

func TestE2E_Version(t *testing.T) {
	stdout, stderr, code := runEducats(t, t.TempDir(), "version")
	require.Zero(t, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "educats version")
}

func TestE2E_ConfigInit(t *testing.T) {
	dir := t.TempDir()

	_, stderr, code := runEducats(t, dir, "config", "init")
	require.Zero(t, code, "stderr: %s", stderr)
	assert.FileExists(t, filepath.Join(dir, "educats.toml"))

	_, stderr, code = runEducats(t, dir, "config", "init")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "already exists")
}

func TestE2E_MissingConfig(t *testing.T) {
	_, stderr, code := runEducats(t, t.TempDir(), "install")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "educats config init")
}

func TestE2E_Lifecycle(t *testing.T) {
	requireUnixTools(t)

	w := testutil.NewWorkspace(t)
	admin := w.Module("admin", "package.json")
	subject := w.Module("subject", "package.json", "node_modules/")
	w.WriteConfig(`[commands]
install = "touch installed"
build = "mkdir dist-$CONFIGURATION"
`)

	_, stderr, code := runEducats(t, w.Dir, "rebuild", "-c", "production")
	require.Zero(t, code, "stderr: %s", stderr)

	for _, dir := range []string{admin, subject} {
		assert.FileExists(t, filepath.Join(dir, "installed"))
		assert.DirExists(t, filepath.Join(dir, "dist-production"))
	}
	assert.NoDirExists(t, filepath.Join(subject, "node_modules"))

	stdout, stderr, code := runEducats(t, w.Dir, "list")
	require.Zero(t, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "admin: ")
	assert.Contains(t, stdout, "subject: ")
}

func TestE2E_ExitCodes(t *testing.T) {
	requireUnixTools(t)

	tests := []struct {
		name     string
		config   string
		args     []string
		wantCode int
	}{
		{
			name:     "failing install",
			config:   "[commands]\ninstall = \"false\"\n",
			args:     []string{"install"},
			wantCode: 1,
		},
		{
			name:     "unknown configuration",
			args:     []string{"build", "-c", "qa"},
			wantCode: 2,
		},
		{
			name:     "path passed as module",
			args:     []string{"install", "-m", "projects/admin"},
			wantCode: 2,
		},
		{
			name:     "unknown flag",
			args:     []string{"install", "--bogus"},
			wantCode: 2,
		},
		{
			name:     "unknown module is a warning",
			config:   "[commands]\ninstall = \"touch installed\"\n",
			args:     []string{"install", "-m", "ghost"},
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.NewWorkspace(t)
			w.Module("admin", "package.json")
			w.WriteConfig(tt.config)

			_, stderr, code := runEducats(t, w.Dir, tt.args...)
			assert.Equal(t, tt.wantCode, code, "stderr: %s", stderr)
		})
	}
}
