package cmdutil

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/educats/cli/internal/cmdtypes"
	"github.com/educats/cli/internal/config"
	"github.com/educats/cli/internal/discovery"
	"github.com/educats/cli/internal/dispatch"
	oerrors "github.com/educats/cli/internal/errors"
	"github.com/educats/cli/internal/filelock"
	"github.com/educats/cli/internal/module"
	"github.com/educats/cli/internal/output"
	"github.com/educats/cli/internal/report"
)

// RunActionOpts holds the inputs for RunAction.
type RunActionOpts struct {
	// Action is the lifecycle action to run.
	Action dispatch.Action
	// Selection holds the -m and -e flag values.
	Selection *SelectionFlags
	// Params are the action parameters. An empty Configuration is filled
	// from commands.default_configuration.
	Params dispatch.Params
	// Config is the global configuration.
	Config *cmdtypes.GlobalConfig
}

// RunAction executes the pipeline shared by every lifecycle command:
// discover the universe, resolve the selection, take the run lock, dispatch
// and print a summary.
//
// It returns the dispatch report. On failure it returns an *ExitError with
// the appropriate exit code and Printed flag.
func RunAction(ctx context.Context, opts RunActionOpts) (*dispatch.Report, error) {
	cfg, err := opts.Config.RequireConfig()
	if err != nil {
		return nil, exitError(err)
	}

	sel, err := opts.Selection.Selector()
	if err != nil {
		return nil, exitError(err)
	}
	exclude, err := opts.Selection.Exclusions(cfg.ExclusionsFor(opts.Action.String()))
	if err != nil {
		return nil, exitError(err)
	}

	params := opts.Params
	if params.Configuration == "" {
		params.Configuration = cfg.Commands.DefaultConfiguration
	}

	exec, err := NewExecutor(cfg, opts.Config.Executor)
	if err != nil {
		return nil, exitError(oerrors.NewConfigError(err.Error(), opts.Config.ConfigPath, ""))
	}
	out := Writer(opts.Config)
	reporter := output.NewConsole(out)
	d := dispatch.New(exec, reporter, Toolchain(cfg))
	if err := d.Validate(opts.Action, params); err != nil {
		return nil, exitError(err)
	}

	universe, err := DiscoverUniverse(cfg, reporter)
	if err != nil {
		return nil, exitError(err)
	}

	res, err := module.Resolve(universe, sel, exclude)
	if err != nil {
		return nil, exitError(err)
	}
	for _, name := range res.Missing {
		reporter.Report(report.Warning, name+" not found")
	}
	if !res.Skipped.IsEmpty() {
		output.Debug("modules skipped", "action", opts.Action, "modules", res.Skipped.Names())
	}
	output.Debug("modules selected", "action", opts.Action, "modules", res.Selected.Names())

	if opts.Action.Mutating() && !res.Selected.IsEmpty() {
		lock := filelock.NewFileLock(filelock.RunLockPath(opts.Config.ConfigPath))
		if err := lock.Acquire(); err != nil {
			return nil, exitError(err)
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				output.Warn("could not release run lock", "path", lock.Path(), "error", err)
			}
		}()
	}

	rep, err := d.Run(ctx, opts.Action, res.Selected, params)
	if err != nil {
		if ctx.Err() != nil && rep != nil {
			output.Warn("run interrupted", "action", opts.Action, "completed", len(rep.Modules), "selected", res.Selected.Len())
		}
		return rep, exitError(err)
	}

	PrintSummary(out, rep, opts.Config.Verbose)

	if rep.Failed() {
		return rep, &oerrors.ExitError{
			Code:    oerrors.ExitGeneralError,
			Err:     fmt.Errorf("%s failed for %d of %d modules", opts.Action, rep.Count(dispatch.StatusFailed), len(rep.Modules)),
			Printed: true,
		}
	}
	return rep, nil
}

// DiscoverUniverse runs discovery with the configured options. Unreadable
// roots are reported as warnings and do not fail the run.
func DiscoverUniverse(cfg *config.Config, reporter report.Reporter) ([]string, error) {
	found, err := discovery.Discover(discovery.Options{
		Roots:    cfg.Modules.Roots,
		MaxDepth: cfg.Modules.Depth,
		MinDepth: cfg.Modules.MinDepth,
		Ignore:   cfg.Modules.Ignore,
	})
	if err != nil {
		return nil, err
	}
	for _, e := range found.Errors {
		reporter.Report(report.Warning, e.Error())
	}
	output.Debug("discovery complete", "roots", len(cfg.Modules.Roots), "candidates", len(found.Paths), "errors", len(found.Errors))
	return found.Paths, nil
}

// Writer returns the user-facing output writer of gc.
func Writer(gc *cmdtypes.GlobalConfig) io.Writer {
	if gc != nil && gc.Out != nil {
		return gc.Out
	}
	return os.Stdout
}

func exitError(err error) error {
	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err}
}
