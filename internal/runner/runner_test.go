package runner

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/educats/cli/internal/errors"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests drive /bin/sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found on PATH")
	}
}

func TestSplit(t *testing.T) {
	t.Setenv("EDUCATS_TEST_REGISTRY", "https://registry.example")

	tests := []struct {
		name    string
		line    string
		vars    map[string]string
		want    []string
		wantErr bool
	}{
		{
			name: "plain words",
			line: "npm install --force",
			want: []string{"npm", "install", "--force"},
		},
		{
			name: "variable from vars",
			line: "npm run build -- --configuration=$CONFIGURATION",
			vars: map[string]string{"CONFIGURATION": "production"},
			want: []string{"npm", "run", "build", "--", "--configuration=production"},
		},
		{
			name: "variable from environment",
			line: "npm install --registry ${EDUCATS_TEST_REGISTRY}",
			want: []string{"npm", "install", "--registry", "https://registry.example"},
		},
		{
			name: "quoted argument stays one word",
			line: `sh -c 'echo "a b"'`,
			want: []string{"sh", "-c", `echo "a b"`},
		},
		{name: "empty line", line: "   ", wantErr: true},
		{name: "unterminated quote", line: `npm "install`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.line, tt.vars)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecRunner_Success(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()

	res, err := New(0).Run(context.Background(), Command{
		Line: `sh -c 'pwd; echo "$GREETING"'`,
		Dir:  dir,
		Vars: map[string]string{"GREETING": "unused"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)

	wantDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, wantDir, "command runs in the module directory")
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireShell(t)

	res, err := New(0).Run(context.Background(), Command{
		Line: `sh -c 'echo partial; echo "npm ERR! missing script" >&2; exit 3'`,
		Dir:  t.TempDir(),
	})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "partial\n", res.Stdout)

	var cmdErr *oerrors.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.ErrorIs(t, err, oerrors.ErrCommand)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, []string{"npm ERR! missing script"}, cmdErr.StderrLines())
}

func TestExecRunner_CannotStart(t *testing.T) {
	res, err := New(0).Run(context.Background(), Command{
		Line: "educats-definitely-not-installed install",
		Dir:  t.TempDir(),
	})
	assert.Nil(t, res)

	var cmdErr *oerrors.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, -1, cmdErr.ExitCode)
	assert.Contains(t, cmdErr.Error(), "could not start")
}

func TestExecRunner_MissingDirectory(t *testing.T) {
	requireShell(t)

	_, err := New(0).Run(context.Background(), Command{
		Line: "sh -c true",
		Dir:  filepath.Join(t.TempDir(), "gone"),
	})
	assert.ErrorIs(t, err, oerrors.ErrCommand)
}

func TestExecRunner_Timeout(t *testing.T) {
	requireShell(t)

	tests := []struct {
		name string
		line string
	}{
		{name: "direct child", line: "sleep 5"},
		{name: "shell with a trailing command", line: "sh -c 'sleep 3; true'"},
		{name: "background grandchild", line: "sh -c 'sleep 5 & wait'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			res, err := New(200*time.Millisecond).Run(context.Background(), Command{
				Line: tt.line,
				Dir:  t.TempDir(),
			})
			elapsed := time.Since(start)

			require.Error(t, err)
			assert.Less(t, elapsed, 2*time.Second, "the whole process group is killed at the deadline")
			assert.ErrorIs(t, err, oerrors.ErrCommand)
			assert.ErrorIs(t, err, context.DeadlineExceeded)
			require.NotNil(t, res, "a started command returns its captured output")

			var cmdErr *oerrors.CommandError
			require.ErrorAs(t, err, &cmdErr)
			assert.True(t, cmdErr.Interrupted)
			assert.Contains(t, cmdErr.Error(), "timed out after 200ms")
			assert.NotContains(t, cmdErr.Error(), "could not start")
		})
	}
}

func TestExecRunner_Cancelled(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	start := time.Now()
	_, err := New(0).Run(ctx, Command{Line: "sh -c 'sleep 5; true'", Dir: t.TempDir()})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.ErrorIs(t, err, context.Canceled)

	var cmdErr *oerrors.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.True(t, cmdErr.Interrupted)
	assert.Contains(t, cmdErr.Error(), "cancelled")
}

func TestExecRunner_DetachedGrandchild(t *testing.T) {
	requireShell(t)

	r := &ExecRunner{WaitDelay: 100 * time.Millisecond}
	start := time.Now()
	res, err := r.Run(context.Background(), Command{
		Line: "sh -c 'sleep 2 & echo done'",
		Dir:  t.TempDir(),
	})
	require.NoError(t, err, "a command that exits 0 succeeds even if a child keeps its output open")
	assert.Less(t, time.Since(start), 1500*time.Millisecond)
	assert.Equal(t, "done\n", res.Stdout)
}

func TestExecRunner_Env(t *testing.T) {
	requireShell(t)

	r := &ExecRunner{Env: append(os.Environ(), "EDUCATS_CHILD=yes")}
	res, err := r.Run(context.Background(), Command{Line: `sh -c 'echo $EDUCATS_CHILD'`, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "yes\n", res.Stdout)
}
