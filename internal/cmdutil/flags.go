// Package cmdutil provides shared command utilities for the lifecycle
// commands. It centralizes flag group management, the discover/resolve/dispatch
// pipeline, and run summary output.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/educats/cli/internal/module"
)

// SelectionFlags holds the module filter flags shared by every lifecycle
// command (install, uninstall, reinstall, build, rebuild).
type SelectionFlags struct {
	Modules []string
	Exclude []string
}

// AddTo registers the selection flags on the given cobra command.
func (f *SelectionFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.Modules, "modules", "m", nil,
		"Modules to act on, by directory name (repeatable, space or comma separated; default: all)")
	cmd.Flags().StringArrayVarP(&f.Exclude, "exclude", "e", nil,
		"Modules to skip, added to the configured exclusions (repeatable)")
}

// Selector parses the -m values.
func (f *SelectionFlags) Selector() (module.Selector, error) {
	return module.ParseSelector(f.Modules)
}

// Exclusions combines the configured exclusion list with the -e values.
func (f *SelectionFlags) Exclusions(configured []string) (module.NameSet, error) {
	names, err := module.ParseNames(f.Exclude)
	if err != nil {
		return nil, err
	}
	return module.NewNameSet(configured...).Union(module.NewNameSet(names...)), nil
}

// InstallFlags holds flags for commands that run the install step.
type InstallFlags struct {
	Silent bool
}

// AddTo registers the install flags on the given cobra command.
func (f *InstallFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.Silent, "silent", "s", false,
		"Suppress package manager output")
}

// UninstallFlags holds flags for commands that run the uninstall step.
type UninstallFlags struct {
	PurgeLock bool
}

// AddTo registers the uninstall flags on the given cobra command.
func (f *UninstallFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.PurgeLock, "purge-lock", "p", false,
		"Also delete the lock file")
}

// BuildFlags holds flags for commands that run the build step.
type BuildFlags struct {
	Configuration string
}

// AddTo registers the build flags on the given cobra command.
func (f *BuildFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Configuration, "configuration", "c", "",
		"Build configuration, e.g. stage or production (default: from config)")
}

// Resolve returns the flag value, or fallback when the flag is unset.
func (f *BuildFlags) Resolve(fallback string) string {
	if f.Configuration != "" {
		return f.Configuration
	}
	return fallback
}
