package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/educats/cli/internal/cmdtypes"
	"github.com/educats/cli/internal/cmdutil"
	"github.com/educats/cli/internal/config"
	"github.com/educats/cli/internal/filelock"
	"github.com/educats/cli/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		forceFlag  bool
		formatFlag string
	)

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new educats configuration file",
		Long: `Create a new educats configuration file with default values.

The file is created at ./educats.toml by default. Use --config or
EDUCATS_CONFIG to choose another location. The format follows the file
extension unless --format is given.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(gc, forceFlag, formatFlag)
		},
	}

	c.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite existing config file")
	c.Flags().StringVar(&formatFlag, "format", "", "File format: toml, yaml (default: from file extension)")

	return c
}

func runConfigInit(gc *cmdtypes.GlobalConfig, force bool, formatFlag string) error {
	path := gc.ConfigPath

	format := config.FormatFromPath(path)
	if formatFlag != "" {
		f, ok := config.ParseFormat(formatFlag)
		if !ok {
			return &cmdtypes.ExitError{
				Code: cmdtypes.ExitUsageError,
				Err:  fmt.Errorf("invalid format %q (valid: toml, yaml)", formatFlag),
			}
		}
		format = f
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("checking config file: %w", err)}
	}
	if exists && !force {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitGeneralError,
			Err:  fmt.Errorf("config file already exists at %s (use --force to overwrite)", path),
		}
	}

	data, err := config.RenderDefault(format)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("rendering config: %w", err)}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("creating config directory: %w", err)}
	}
	if err := filelock.AtomicWrite(path, data, 0o644); err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("writing config file: %w", err)}
	}

	output.Debug("config written", "path", path, "format", format, "overwrite", exists)
	_, _ = fmt.Fprintln(cmdutil.Writer(gc), output.FormatCheckmark("Config file created: "+path))
	return nil
}
