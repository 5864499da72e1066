package cmdutil

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/educats/cli/internal/config"
	"github.com/educats/cli/internal/dispatch"
	"github.com/educats/cli/internal/output"
	"github.com/educats/cli/internal/runner"
)

// SpinnerExecutor decorates an executor with a terminal spinner and debug
// logging of the captured output.
type SpinnerExecutor struct {
	Next dispatch.Executor
}

// Run implements dispatch.Executor.
func (e *SpinnerExecutor) Run(ctx context.Context, cmd runner.Command) (*runner.Result, error) {
	name := filepath.Base(cmd.Dir)
	modLog := output.ModuleLogger(name)
	modLog.Debug("running command", "command", cmd.Line, "dir", cmd.Dir)

	type outcome struct {
		res *runner.Result
		err error
	}
	done := make(chan outcome, 1)
	_ = output.RunWithSpinner(ctx, func() error {
		res, err := e.Next.Run(ctx, cmd)
		done <- outcome{res: res, err: err}
		return err
	}, output.WithTitle(output.StyleAction.Render(firstWord(cmd.Line))+" "+output.StyleNoun.Render(name)))
	o := <-done
	res, err := o.res, o.err

	if res != nil {
		modLog.Debug("command finished", "exit", res.ExitCode, "duration", res.Duration)
		for _, line := range strings.Split(strings.TrimRight(res.Stdout, "\n"), "\n") {
			if line != "" {
				modLog.Debug(line)
			}
		}
	}
	return res, err
}

func firstWord(line string) string {
	if fields := strings.Fields(line); len(fields) > 0 {
		return fields[0]
	}
	return line
}

// NewExecutor returns the executor used by lifecycle commands: a
// runner.ExecRunner bounded by commands.timeout, wrapped in a spinner.
// A non-nil override replaces the runner and is still wrapped.
func NewExecutor(cfg *config.Config, override dispatch.Executor) (dispatch.Executor, error) {
	next := override
	if next == nil {
		timeout, err := cfg.CommandTimeout()
		if err != nil {
			return nil, err
		}
		next = runner.New(timeout)
	}
	return &SpinnerExecutor{Next: next}, nil
}

// Toolchain maps the commands section of the configuration onto the
// dispatcher's toolchain.
func Toolchain(cfg *config.Config) dispatch.Toolchain {
	c := cfg.Commands
	return dispatch.Toolchain{
		InstallCommand: c.Install,
		SilentFlag:     c.SilentFlag,
		BuildCommand:   c.Build,
		Manifest:       c.Manifest,
		LockFile:       c.LockFile,
		CacheDir:       c.CacheDir,
		Configurations: c.Configurations,
	}
}
