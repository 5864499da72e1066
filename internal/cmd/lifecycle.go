package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/educats/cli/internal/cmdtypes"
	"github.com/educats/cli/internal/cmdutil"
	"github.com/educats/cli/internal/dispatch"
)

const selectionHelp = `
Module selection:
  -m NAME    act on the named modules only (repeatable, or "a b" / "a,b")
  -e NAME    skip the named modules, in addition to the exclude.<action>
             list of the configuration file

Unknown names passed to -m are reported as warnings and the rest proceed.`

// NewInstallCmd creates the install command.
func NewInstallCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		sel cmdutil.SelectionFlags
		inf cmdutil.InstallFlags
	)

	c := &cobra.Command{
		Use:   "install",
		Short: "Install module dependencies",
		Long: `Run the configured install command in every selected module.

Modules without a manifest are skipped with a warning.` + selectionHelp + `

Examples:
  # Install every module
  educats install

  # Install two modules quietly
  educats install -m admin -m subject -s`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runLifecycle(c.Context(), gc, dispatch.Install, &sel, dispatch.Params{Silent: inf.Silent})
		},
	}

	sel.AddTo(c)
	inf.AddTo(c)
	return c
}

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		sel cmdutil.SelectionFlags
		unf cmdutil.UninstallFlags
	)

	c := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove installed module dependencies",
		Long: `Delete the dependency cache directory of every selected module, and with
-p its lock file too. Missing entries are reported as warnings.` + selectionHelp + `

Examples:
  # Remove node_modules everywhere except the admin module
  educats uninstall -e admin

  # Also remove package-lock.json
  educats uninstall -p`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runLifecycle(c.Context(), gc, dispatch.Uninstall, &sel, dispatch.Params{PurgeLock: unf.PurgeLock})
		},
	}

	sel.AddTo(c)
	unf.AddTo(c)
	return c
}

// NewReinstallCmd creates the reinstall command.
func NewReinstallCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		sel cmdutil.SelectionFlags
		inf cmdutil.InstallFlags
		unf cmdutil.UninstallFlags
	)

	c := &cobra.Command{
		Use:   "reinstall",
		Short: "Uninstall then install module dependencies",
		Long: `Run uninstall followed by install in every selected module. A module whose
uninstall fails is not installed; the remaining modules still run.` + selectionHelp,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runLifecycle(c.Context(), gc, dispatch.Reinstall, &sel, dispatch.Params{
				Silent:    inf.Silent,
				PurgeLock: unf.PurgeLock,
			})
		},
	}

	sel.AddTo(c)
	inf.AddTo(c)
	unf.AddTo(c)
	return c
}

// NewBuildCmd creates the build command.
func NewBuildCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		sel cmdutil.SelectionFlags
		bf  cmdutil.BuildFlags
	)

	c := &cobra.Command{
		Use:   "build",
		Short: "Build modules",
		Long: `Run the configured build command in every selected module. The build
configuration is exported to the command as $CONFIGURATION.` + selectionHelp + `

Examples:
  # Build every module for staging
  educats build

  # Build the subject module for production
  educats build -m subject -c production`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runLifecycle(c.Context(), gc, dispatch.Build, &sel, dispatch.Params{Configuration: bf.Configuration})
		},
	}

	sel.AddTo(c)
	bf.AddTo(c)
	return c
}

// NewRebuildCmd creates the rebuild command.
func NewRebuildCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		sel cmdutil.SelectionFlags
		inf cmdutil.InstallFlags
		unf cmdutil.UninstallFlags
		bf  cmdutil.BuildFlags
	)

	c := &cobra.Command{
		Use:   "rebuild",
		Short: "Uninstall, install and build modules",
		Long: `Run uninstall, install and build in every selected module, stopping at the
first failed step of each module.` + selectionHelp,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runLifecycle(c.Context(), gc, dispatch.Rebuild, &sel, dispatch.Params{
				Silent:        inf.Silent,
				PurgeLock:     unf.PurgeLock,
				Configuration: bf.Configuration,
			})
		},
	}

	sel.AddTo(c)
	inf.AddTo(c)
	unf.AddTo(c)
	bf.AddTo(c)
	return c
}

func runLifecycle(ctx context.Context, gc *cmdtypes.GlobalConfig, action dispatch.Action, sel *cmdutil.SelectionFlags, params dispatch.Params) error {
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := cmdutil.RunAction(ctx, cmdutil.RunActionOpts{
		Action:    action,
		Selection: sel,
		Params:    params,
		Config:    gc,
	})
	return err
}
