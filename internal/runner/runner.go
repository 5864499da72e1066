// Package runner executes external package-manager commands inside module
// directories and captures their output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"mvdan.cc/sh/v3/shell"

	oerrors "github.com/educats/cli/internal/errors"
)

// Command is one external invocation.
type Command struct {
	// Line is the command line, split with shell word rules. $NAME and ${NAME}
	// expand from Vars first, then from the process environment.
	Line string

	// Dir is the working directory.
	Dir string

	// Vars are extra variables available for expansion in Line.
	Vars map[string]string
}

// Result is the captured outcome of a command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// ExecRunner runs commands with os/exec. No shell is involved: the line is
// split into argv and the first word is looked up on PATH.
type ExecRunner struct {
	// Timeout bounds each command. Zero means no limit.
	Timeout time.Duration

	// Env overrides the child environment. Nil inherits the process environment.
	Env []string

	// WaitDelay bounds how long Run waits for the output pipes to close once
	// the command has exited or been killed. Zero means DefaultWaitDelay.
	WaitDelay time.Duration
}

// DefaultWaitDelay is used when ExecRunner.WaitDelay is zero.
const DefaultWaitDelay = 2 * time.Second

// New creates an ExecRunner with the given per-command timeout.
func New(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Split expands and splits a command line into argv.
func Split(line string, vars map[string]string) ([]string, error) {
	args, err := shell.Fields(line, func(name string) string {
		if v, ok := vars[name]; ok {
			return v
		}
		return os.Getenv(name)
	})
	if err != nil {
		return nil, fmt.Errorf("parsing command %q: %w", line, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("command %q is empty", line)
	}
	return args, nil
}

// Run executes cmd and waits for it to finish. A non-zero exit returns the
// captured Result together with a *errors.CommandError. A command that
// cannot be parsed or started returns a CommandError with ExitCode -1.
//
// The command runs in its own process group, so a timeout or cancellation
// kills every process it spawned, not just the direct child.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	args, err := Split(cmd.Line, cmd.Vars)
	if err != nil {
		return nil, &oerrors.CommandError{Command: cmd.Line, Dir: cmd.Dir, ExitCode: -1, Err: err}
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, args[0], args[1:]...)
	c.Dir = cmd.Dir
	if r.Env != nil {
		c.Env = r.Env
	}
	c.WaitDelay = r.WaitDelay
	if c.WaitDelay <= 0 {
		c.WaitDelay = DefaultWaitDelay
	}
	killProcessGroup(c)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	runErr := c.Run()
	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if runErr == nil {
		return res, nil
	}

	// A detached grandchild holding the pipes open past WaitDelay does not
	// turn a successful command into a failure.
	if errors.Is(runErr, exec.ErrWaitDelay) && c.ProcessState != nil && c.ProcessState.Success() && ctx.Err() == nil {
		return res, nil
	}

	if c.ProcessState == nil {
		return nil, &oerrors.CommandError{Command: cmd.Line, Dir: cmd.Dir, ExitCode: -1, Stderr: res.Stderr, Err: runErr}
	}

	res.ExitCode = c.ProcessState.ExitCode()
	cmdErr := &oerrors.CommandError{Command: cmd.Line, Dir: cmd.Dir, ExitCode: res.ExitCode, Stderr: res.Stderr, Err: runErr}

	switch ctxErr := ctx.Err(); {
	case errors.Is(ctxErr, context.DeadlineExceeded):
		cmdErr.Interrupted = true
		if r.Timeout > 0 {
			cmdErr.Err = fmt.Errorf("timed out after %s: %w", r.Timeout, ctxErr)
		} else {
			cmdErr.Err = fmt.Errorf("timed out: %w", ctxErr)
		}
	case ctxErr != nil:
		cmdErr.Interrupted = true
		cmdErr.Err = fmt.Errorf("cancelled: %w", ctxErr)
	}
	return res, cmdErr
}
