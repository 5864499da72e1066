//nolint:revive // Package name matches the package it tests
package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{ErrConfig, ErrDiscovery, ErrResolution, ErrInvalidPath, ErrCommand, ErrLocked}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "configuration failed",
		Message:  "configuration file not found",
		Location: "/work/educats.toml",
		Context:  map[string]string{"Source": "flag"},
		Hint:     "Run 'educats config init'",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: configuration failed")
	assert.Contains(t, output, "Location: /work/educats.toml")
	assert.Contains(t, output, "Source: flag")
	assert.Contains(t, output, "configuration file not found")
	assert.Contains(t, output, "Hint: Run 'educats config init'")
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("missing roots", "/work/educats.toml", "add modules.roots")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)

	var detail *DetailError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, "missing roots", detail.Message)
	assert.Equal(t, "/work/educats.toml", detail.Location)
}

func TestNewResolutionError(t *testing.T) {
	err := NewResolutionError(`invalid module name "a/b"`, "use directory names")
	assert.ErrorIs(t, err, ErrResolution)
	assert.Equal(t, ExitUsageError, ExitCodeFromError(err))
}

func TestTypedErrorsUnwrap(t *testing.T) {
	t.Run("path error", func(t *testing.T) {
		err := &PathError{Path: "./missing", Err: fs.ErrNotExist}
		assert.ErrorIs(t, err, ErrInvalidPath)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Contains(t, err.Error(), "./missing")
	})

	t.Run("discovery error", func(t *testing.T) {
		err := fmt.Errorf("walking: %w", &DiscoveryError{Root: "./projects", Err: fs.ErrPermission})
		assert.ErrorIs(t, err, ErrDiscovery)
		assert.ErrorIs(t, err, fs.ErrPermission)

		var de *DiscoveryError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "./projects", de.Root)
	})

	t.Run("command error", func(t *testing.T) {
		err := &CommandError{Command: "npm install", Dir: "/work/admin", ExitCode: 1, Stderr: "npm ERR! one\n\nnpm ERR! two\r\n"}
		assert.ErrorIs(t, err, ErrCommand)
		assert.Contains(t, err.Error(), "exited with code 1")
		assert.Equal(t, []string{"npm ERR! one", "npm ERR! two"}, err.StderrLines())
	})

	t.Run("command that never started", func(t *testing.T) {
		cause := errors.New("executable file not found")
		err := &CommandError{Command: "npx", Dir: "/work", ExitCode: -1, Err: cause}
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "could not start")
	})

	t.Run("command killed on timeout", func(t *testing.T) {
		cause := fmt.Errorf("timed out after 1s: %w", context.DeadlineExceeded)
		err := &CommandError{Command: "npm install", Dir: "/work", ExitCode: -1, Err: cause, Interrupted: true}
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "was stopped: timed out after 1s")
		assert.NotContains(t, err.Error(), "could not start")
	})
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "nil error returns success", err: nil, wantCode: ExitSuccess},
		{name: "config error", err: NewConfigError("bad", "", ""), wantCode: ExitGeneralError},
		{name: "resolution error", err: Wrap(ErrResolution, "bad -m"), wantCode: ExitUsageError},
		{name: "explicit exit error", err: NewExitError(errors.New("x"), ExitUsageError), wantCode: ExitUsageError},
		{name: "locked", err: ErrLocked, wantCode: ExitGeneralError},
		{name: "unknown error", err: errors.New("unknown"), wantCode: ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 1, ExitGeneralError)
	assert.Equal(t, 2, ExitUsageError)
	assert.Equal(t, "Usage Error", ExitCodeName(ExitUsageError))
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrConfig, "reading educats.toml")

	assert.ErrorIs(t, wrapped, ErrConfig)
	assert.Contains(t, wrapped.Error(), "reading educats.toml")
}
