package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/educats/cli/internal/cmdtypes"
	"github.com/educats/cli/internal/cmdutil"
	"github.com/educats/cli/internal/dispatch"
	"github.com/educats/cli/internal/module"
	"github.com/educats/cli/internal/output"
)

// NewListCmd creates the list command.
func NewListCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var tableFlag, treeFlag bool

	c := &cobra.Command{
		Use:   "list",
		Short: "List discovered modules",
		Long: `List every module found below the configured roots with its absolute path.

Exclusions and -m filters do not apply; list shows the whole workspace.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runList(ctx, gc, listOptions{table: tableFlag, tree: treeFlag})
		},
	}

	c.Flags().BoolVar(&tableFlag, "table", false, "Render modules as a table")
	c.Flags().BoolVar(&treeFlag, "tree", false, "Render modules as a tree below each root")
	c.MarkFlagsMutuallyExclusive("table", "tree")
	return c
}

type listOptions struct {
	table bool
	tree  bool
}

func runList(ctx context.Context, gc *cmdtypes.GlobalConfig, opts listOptions) error {
	cfg, err := gc.RequireConfig()
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}

	out := cmdutil.Writer(gc)
	console := output.NewConsole(out)

	paths, err := cmdutil.DiscoverUniverse(cfg, console)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}
	universe, err := module.FromPaths(paths)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}

	if opts.tree && !universe.IsEmpty() {
		for _, root := range cfg.Modules.Roots {
			if tree := output.RenderModuleTree(root, modulesBelow(root, universe, cfg.Commands.Manifest)); tree != "" {
				_, _ = fmt.Fprint(out, tree)
			}
		}
		return nil
	}

	if opts.table && !universe.IsEmpty() {
		rows := make([]output.ModuleRow, 0, universe.Len())
		for m := range universe.All() {
			rows = append(rows, output.ModuleRow{
				Name:     m.Name(),
				Path:     m.Path(),
				Manifest: m.Has(cfg.Commands.Manifest),
			})
		}
		_, _ = fmt.Fprintln(out, output.RenderModuleTable(rows))
		return nil
	}

	d := dispatch.New(nil, console, cmdutil.Toolchain(cfg))
	if _, err := d.Run(ctx, dispatch.List, universe, dispatch.Params{}); err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}
	return nil
}

// modulesBelow maps the modules under root to their path relative to root,
// noting the ones without a manifest.
func modulesBelow(root string, universe *module.Collection, manifest string) map[string]string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	found := make(map[string]string)
	for m := range universe.All() {
		rel, err := filepath.Rel(abs, m.Path())
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		note := ""
		if !m.Has(manifest) {
			note = "no " + manifest
		}
		found[rel] = note
	}
	return found
}
