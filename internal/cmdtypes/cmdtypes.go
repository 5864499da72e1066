// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and internal/cmdutil.
package cmdtypes

import (
	"io"

	"github.com/educats/cli/internal/config"
	"github.com/educats/cli/internal/dispatch"
	oerrors "github.com/educats/cli/internal/errors"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded configuration. Nil when loading failed; see LoadErr.
	Config *config.Config

	// LoadErr is the configuration load error, reported by commands that
	// need a configuration.
	LoadErr error

	// ConfigPath is the resolved configuration file path.
	ConfigPath string

	// ConfigSource tells where ConfigPath came from.
	ConfigSource config.ConfigSource

	// ConfigFile is the file the configuration was read from, with ~
	// expanded. Empty when loading failed.
	ConfigFile string

	Verbose bool

	// Executor runs external commands. Nil uses a runner.ExecRunner.
	Executor dispatch.Executor

	// Out receives user-facing output. Nil means stdout.
	Out io.Writer
}

// RequireConfig returns the loaded configuration or the load error.
func (g *GlobalConfig) RequireConfig() (*config.Config, error) {
	if g.Config == nil {
		if g.LoadErr != nil {
			return nil, g.LoadErr
		}
		return nil, oerrors.NewConfigError("configuration not loaded", g.ConfigPath, "")
	}
	return g.Config, nil
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess      = oerrors.ExitSuccess
	ExitGeneralError = oerrors.ExitGeneralError
	ExitUsageError   = oerrors.ExitUsageError
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
