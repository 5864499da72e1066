package dispatch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	oerrors "github.com/educats/cli/internal/errors"
	"github.com/educats/cli/internal/module"
	"github.com/educats/cli/internal/report"
	"github.com/educats/cli/internal/runner"
)

// ConfigurationVar is the variable bound to Params.Configuration when the
// build command line is expanded.
const ConfigurationVar = "CONFIGURATION"

// Executor runs one external command. *runner.ExecRunner satisfies it.
type Executor interface {
	Run(ctx context.Context, cmd runner.Command) (*runner.Result, error)
}

// Toolchain describes the package manager the actions drive.
type Toolchain struct {
	// InstallCommand installs dependencies, e.g. "npm install --force".
	InstallCommand string

	// SilentFlag is appended to InstallCommand in silent mode.
	SilentFlag string

	// BuildCommand builds the module. $CONFIGURATION expands to the
	// selected build configuration.
	BuildCommand string

	// Manifest must exist for install and build to run.
	Manifest string

	// LockFile is removed by uninstall when PurgeLock is set.
	LockFile string

	// CacheDir is always removed by uninstall.
	CacheDir string

	// Configurations lists the accepted build configurations.
	Configurations []string
}

// Params are the per-invocation options of an action.
type Params struct {
	// Silent suppresses package-manager chatter during install.
	Silent bool

	// PurgeLock also deletes the lock file during uninstall.
	PurgeLock bool

	// Configuration is the build configuration name.
	Configuration string
}

// Dispatcher runs actions module by module, in collection order.
type Dispatcher struct {
	exec     Executor
	reporter report.Reporter
	tools    Toolchain
}

// New creates a Dispatcher. A nil reporter discards messages.
func New(exec Executor, reporter report.Reporter, tools Toolchain) *Dispatcher {
	if reporter == nil {
		reporter = report.Discard
	}
	return &Dispatcher{exec: exec, reporter: reporter, tools: tools}
}

// Validate checks params against the action before anything runs.
func (d *Dispatcher) Validate(action Action, params Params) error {
	steps := action.Steps()
	if steps == nil {
		return fmt.Errorf("unknown action %s", action)
	}
	if !slices.Contains(steps, StepBuild) {
		return nil
	}
	if params.Configuration == "" || !slices.Contains(d.tools.Configurations, params.Configuration) {
		return oerrors.NewResolutionError(
			fmt.Sprintf("unknown build configuration %q", params.Configuration),
			fmt.Sprintf("Use one of: %s.", strings.Join(d.tools.Configurations, ", ")),
		)
	}
	return nil
}

// Run applies action to every module of modules.
//
// A failing step is reported with the command's stderr and skips the
// remaining steps of that module; the next module still runs. The returned
// error is non-nil only for invalid params or a cancelled context, in which
// case the report covers the modules processed so far.
func (d *Dispatcher) Run(ctx context.Context, action Action, modules *module.Collection, params Params) (*Report, error) {
	if err := d.Validate(action, params); err != nil {
		return nil, err
	}

	rep := &Report{Action: action}
	r := &run{d: d, rep: rep, params: params}

	if modules.IsEmpty() {
		rep.Empty = true
		r.warn("no modules to %s", action)
		return rep, nil
	}

	for m := range modules.All() {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Modules = append(rep.Modules, r.module(ctx, m, action.Steps()))
	}
	return rep, nil
}

// run carries the state of one Dispatcher.Run call.
type run struct {
	d      *Dispatcher
	rep    *Report
	params Params
}

func (r *run) module(ctx context.Context, m *module.Module, steps []Step) ModuleOutcome {
	out := ModuleOutcome{Name: m.Name(), Path: m.Path()}
	failed := false
	for _, step := range steps {
		if failed {
			out.Steps = append(out.Steps, StepOutcome{Step: step, Status: StatusSkipped})
			continue
		}
		start := time.Now()
		status, err := r.step(ctx, m, step)
		out.Steps = append(out.Steps, StepOutcome{Step: step, Status: status, Duration: time.Since(start), Err: err})
		failed = status == StatusFailed
	}
	return out
}

func (r *run) step(ctx context.Context, m *module.Module, step Step) (Status, error) {
	switch step {
	case StepInstall:
		return r.install(ctx, m)
	case StepUninstall:
		return r.uninstall(m)
	case StepBuild:
		return r.build(ctx, m)
	case StepList:
		r.report(report.Info, "%s: %s", m.Name(), m.Path())
		return StatusOK, nil
	default:
		return StatusFailed, fmt.Errorf("unknown step %s", step)
	}
}

func (r *run) install(ctx context.Context, m *module.Module) (Status, error) {
	tools := r.d.tools
	if !m.Has(tools.Manifest) {
		r.warn("%s not found in %s module", tools.Manifest, strings.ToUpper(m.Name()))
		return StatusWarned, nil
	}

	line := tools.InstallCommand
	if r.params.Silent && tools.SilentFlag != "" {
		line += " " + tools.SilentFlag
	}
	if err := r.exec(ctx, m, StepInstall, line); err != nil {
		return StatusFailed, err
	}
	r.report(report.Success, "installed %s", m.Name())
	return StatusOK, nil
}

func (r *run) uninstall(m *module.Module) (Status, error) {
	entries := []string{r.d.tools.CacheDir}
	if r.params.PurgeLock {
		entries = append(entries, r.d.tools.LockFile)
	}

	status := StatusOK
	for _, entry := range entries {
		if !m.Has(entry) {
			r.warn("%s not found in %s", entry, m.Name())
			status = StatusWarned
			continue
		}
		absent, err := m.Delete(entry)
		if err == nil && !absent {
			err = fmt.Errorf("%s still present in %s", entry, m.Name())
		}
		if err != nil {
			r.report(report.Error, "uninstall failed in %s: %v", m.Name(), err)
			return StatusFailed, err
		}
		r.report(report.Success, "removed %s from %s", entry, m.Name())
	}
	return status, nil
}

func (r *run) build(ctx context.Context, m *module.Module) (Status, error) {
	tools := r.d.tools
	if !m.Has(tools.Manifest) {
		r.warn("%s not found in %s module", tools.Manifest, strings.ToUpper(m.Name()))
		return StatusWarned, nil
	}
	if err := r.exec(ctx, m, StepBuild, tools.BuildCommand); err != nil {
		return StatusFailed, err
	}
	r.report(report.Success, "built %s (%s)", m.Name(), r.params.Configuration)
	return StatusOK, nil
}

// exec runs line in the module directory and reports a failure together
// with the captured stderr.
func (r *run) exec(ctx context.Context, m *module.Module, step Step, line string) error {
	_, err := r.d.exec.Run(ctx, runner.Command{
		Line: line,
		Dir:  m.Path(),
		Vars: map[string]string{ConfigurationVar: r.params.Configuration},
	})
	if err == nil {
		return nil
	}

	r.report(report.Error, "%s failed in %s: %v", step, m.Name(), err)
	var cmdErr *oerrors.CommandError
	if errors.As(err, &cmdErr) {
		for _, line := range cmdErr.StderrLines() {
			r.d.reporter.Report(report.Error, line)
		}
	}
	return err
}

func (r *run) warn(format string, args ...any) {
	r.rep.Warnings++
	r.report(report.Warning, format, args...)
}

func (r *run) report(sev report.Severity, format string, args ...any) {
	r.d.reporter.Report(sev, fmt.Sprintf(format, args...))
}
