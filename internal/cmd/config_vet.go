package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/educats/cli/internal/cmdtypes"
	"github.com/educats/cli/internal/cmdutil"
	"github.com/educats/cli/internal/config"
	oerrors "github.com/educats/cli/internal/errors"
	"github.com/educats/cli/internal/output"
	"github.com/educats/cli/internal/report"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the educats configuration file",
		Long: `Validate the educats configuration file.

The file is parsed, every field is checked, and each configured module root
is checked for existence. Missing roots are warnings: discovery skips them.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigVet(gc)
		},
	}
}

func runConfigVet(gc *cmdtypes.GlobalConfig) error {
	cfg, err := gc.RequireConfig()
	if err != nil {
		return &cmdtypes.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err}
	}

	out := cmdutil.Writer(gc)
	console := output.NewConsole(out)
	for _, p := range config.CheckRoots(cfg) {
		console.Report(report.Warning, fmt.Sprintf("module root %s: %v", p.Root, p.Err))
	}

	file := gc.ConfigFile
	if file == "" {
		file = gc.ConfigPath
	}
	_, _ = fmt.Fprintln(out, output.FormatCheckmark("Config file is valid: "+file))
	return nil
}
