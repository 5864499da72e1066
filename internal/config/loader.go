package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	oerrors "github.com/educats/cli/internal/errors"
)

// Environment variable prefix for educats configuration.
const envPrefix = "EDUCATS"

const initHint = "Run 'educats config init' to create a configuration file."

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a configuration loader with defaults and
// EDUCATS_* environment overrides registered.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())

	return &Loader{v: v}
}

// setDefaults registers every key so that env overrides reach Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("modules.roots", d.Modules.Roots)
	v.SetDefault("modules.depth", d.Modules.Depth)
	v.SetDefault("modules.min_depth", d.Modules.MinDepth)
	v.SetDefault("modules.ignore", d.Modules.Ignore)

	v.SetDefault("exclude.install", d.Exclude.Install)
	v.SetDefault("exclude.uninstall", d.Exclude.Uninstall)
	v.SetDefault("exclude.reinstall", d.Exclude.Reinstall)
	v.SetDefault("exclude.build", d.Exclude.Build)
	v.SetDefault("exclude.rebuild", d.Exclude.Rebuild)

	v.SetDefault("commands.install", d.Commands.Install)
	v.SetDefault("commands.silent_flag", d.Commands.SilentFlag)
	v.SetDefault("commands.build", d.Commands.Build)
	v.SetDefault("commands.manifest", d.Commands.Manifest)
	v.SetDefault("commands.lock_file", d.Commands.LockFile)
	v.SetDefault("commands.cache_dir", d.Commands.CacheDir)
	v.SetDefault("commands.configurations", d.Commands.Configurations)
	v.SetDefault("commands.default_configuration", d.Commands.DefaultConfiguration)
	v.SetDefault("commands.timeout", d.Commands.Timeout)

	v.SetDefault("log.timestamps", *d.Log.Timestamps)
}

// Load reads, decodes and validates the configuration file at path.
// Environment variables take precedence over file values. A missing file,
// a malformed file and invalid values are all configuration errors.
func (l *Loader) Load(path string) (*Config, error) {
	expandedPath, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType(string(FormatFromPath(expandedPath)))

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.NewConfigError("configuration file not found", expandedPath, initHint)
		}
		return nil, &oerrors.DetailError{
			Type:     "configuration failed",
			Message:  fmt.Sprintf("cannot parse configuration: %v", err),
			Location: expandedPath,
			Hint:     "Check the file syntax, or run 'educats config init --force' to start over.",
			Cause:    fmt.Errorf("%w: %w", oerrors.ErrConfig, err),
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, &oerrors.DetailError{
			Type:     "configuration failed",
			Message:  fmt.Sprintf("cannot decode configuration: %v", err),
			Location: expandedPath,
			Cause:    fmt.Errorf("%w: %w", oerrors.ErrConfig, err),
		}
	}

	if err := Validate(&cfg); err != nil {
		return nil, &oerrors.DetailError{
			Type:     "configuration failed",
			Message:  err.Error(),
			Location: expandedPath,
			Hint:     "Run 'educats config vet' after fixing the listed fields.",
			Cause:    fmt.Errorf("%w: %w", oerrors.ErrConfig, err),
		}
	}

	return &cfg, nil
}

// ConfigFileUsed returns the file the loader last read, with ~ expanded.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}
