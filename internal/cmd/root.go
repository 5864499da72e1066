// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/educats/cli/internal/cmdtypes"
	"github.com/educats/cli/internal/config"
	"github.com/educats/cli/internal/output"
)

// rootFlags holds the persistent flags of the root command.
type rootFlags struct {
	config     string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for the educats CLI.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithConfig(&cmdtypes.GlobalConfig{})
}

// NewRootCmdWithConfig creates the root command around an existing
// GlobalConfig. Fields set before execution, such as Executor and Out, are
// kept; the rest is filled in by PersistentPreRunE.
func NewRootCmdWithConfig(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "educats",
		Short: "Educats workspace module manager",
		Long: `educats discovers the modules of a workspace and runs package-manager
lifecycle actions on them.

A module is a directory found below one of the configured roots. Actions
run against every module, or against the ones named with -m, minus the
configured and -e exclusions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd, gc, &flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: EDUCATS_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", false, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewInstallCmd(gc),
		NewUninstallCmd(gc),
		NewReinstallCmd(gc),
		NewBuildCmd(gc),
		NewRebuildCmd(gc),
		NewListCmd(gc),
		NewConfigCmd(gc),
		NewVersionCmd(gc),
	)

	return rootCmd
}

// initializeGlobals resolves and loads the configuration and sets up logging.
func initializeGlobals(cmd *cobra.Command, gc *cmdtypes.GlobalConfig, flags *rootFlags) error {
	resolved, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: flags.config,
	})
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}

	gc.ConfigPath = resolved.ConfigPath
	gc.ConfigSource = resolved.Source
	gc.Verbose = flags.verbose
	if gc.Out == nil {
		gc.Out = cmd.OutOrStdout()
	}

	// Don't fail here - config init and version work without a file.
	loader := config.NewLoader()
	gc.Config, gc.LoadErr = loader.Load(resolved.ConfigPath)
	if gc.LoadErr == nil {
		gc.ConfigFile = loader.ConfigFileUsed()
	}

	// Timestamps: flag (if explicitly set) > config > default (off)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if gc.Config != nil && gc.Config.Log.Timestamps != nil {
		logCfg.Timestamps = gc.Config.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	resolved.LogResolved()
	if gc.LoadErr != nil {
		output.Debug("config load error", "error", gc.LoadErr)
	}

	return nil
}
