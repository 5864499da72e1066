// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// ModulesConfig controls where modules are discovered.
type ModulesConfig struct {
	// Roots are the directories searched for modules, relative to the
	// working directory.
	// Env: EDUCATS_MODULES_ROOTS
	Roots []string `mapstructure:"roots" toml:"roots" yaml:"roots"`

	// Depth is how many levels below each root are searched (0 = root only).
	// Default: 1
	Depth int `mapstructure:"depth" toml:"depth" yaml:"depth"`

	// MinDepth is the shallowest level reported as a module. Set to 1 to
	// skip the roots themselves.
	// Default: 0
	MinDepth int `mapstructure:"min_depth" toml:"min_depth" yaml:"min_depth"`

	// Ignore lists directory names that are never modules and never searched.
	// Default: ["node_modules", ".git"]
	Ignore []string `mapstructure:"ignore" toml:"ignore" yaml:"ignore"`
}

// ExcludeConfig holds the default exclusion list of each action.
type ExcludeConfig struct {
	Install   []string `mapstructure:"install" toml:"install" yaml:"install"`
	Uninstall []string `mapstructure:"uninstall" toml:"uninstall" yaml:"uninstall"`
	Reinstall []string `mapstructure:"reinstall" toml:"reinstall" yaml:"reinstall"`
	Build     []string `mapstructure:"build" toml:"build" yaml:"build"`
	Rebuild   []string `mapstructure:"rebuild" toml:"rebuild" yaml:"rebuild"`
}

// CommandsConfig describes the package manager that actions drive.
type CommandsConfig struct {
	// Install is the install command line.
	// Default: "npm install --force"
	Install string `mapstructure:"install" toml:"install" yaml:"install"`

	// SilentFlag is appended to Install by --silent.
	// Default: "--silent"
	SilentFlag string `mapstructure:"silent_flag" toml:"silent_flag" yaml:"silent_flag"`

	// Build is the build command line. $CONFIGURATION expands to the
	// selected build configuration.
	Build string `mapstructure:"build" toml:"build" yaml:"build"`

	// Manifest is the file a module must contain to be installed or built.
	// Default: "package.json"
	Manifest string `mapstructure:"manifest" toml:"manifest" yaml:"manifest"`

	// LockFile is removed by uninstall --purge-lock.
	// Default: "package-lock.json"
	LockFile string `mapstructure:"lock_file" toml:"lock_file" yaml:"lock_file"`

	// CacheDir is the dependency directory removed by uninstall.
	// Default: "node_modules"
	CacheDir string `mapstructure:"cache_dir" toml:"cache_dir" yaml:"cache_dir"`

	// Configurations lists the accepted build configurations.
	// Default: ["stage", "production"]
	Configurations []string `mapstructure:"configurations" toml:"configurations" yaml:"configurations"`

	// DefaultConfiguration is used when --configuration is not given.
	// Default: "stage"
	DefaultConfiguration string `mapstructure:"default_configuration" toml:"default_configuration" yaml:"default_configuration"`

	// Timeout bounds every external command, as a Go duration. "0s" disables it.
	// Env: EDUCATS_COMMANDS_TIMEOUT, Default: "0s"
	Timeout string `mapstructure:"timeout" toml:"timeout" yaml:"timeout"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: false. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" toml:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// Config represents the educats configuration file.
type Config struct {
	Modules  ModulesConfig  `mapstructure:"modules" toml:"modules" yaml:"modules"`
	Exclude  ExcludeConfig  `mapstructure:"exclude" toml:"exclude" yaml:"exclude"`
	Commands CommandsConfig `mapstructure:"commands" toml:"commands" yaml:"commands"`
	Log      LogConfig      `mapstructure:"log" toml:"log" yaml:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `educats config init` to generate the initial config file.
func DefaultConfig() *Config {
	timestamps := false
	return &Config{
		Modules: ModulesConfig{
			Roots:  []string{"./projects"},
			Depth:  1,
			Ignore: []string{"node_modules", ".git"},
		},
		Exclude: ExcludeConfig{
			Install:   []string{},
			Uninstall: []string{},
			Reinstall: []string{},
			Build:     []string{},
			Rebuild:   []string{},
		},
		Commands: CommandsConfig{
			Install:              "npm install --force",
			SilentFlag:           "--silent",
			Build:                "npm run build -- --configuration=$CONFIGURATION",
			Manifest:             "package.json",
			LockFile:             "package-lock.json",
			CacheDir:             "node_modules",
			Configurations:       []string{"stage", "production"},
			DefaultConfiguration: "stage",
			Timeout:              "0s",
		},
		Log: LogConfig{Timestamps: &timestamps},
	}
}

// ExclusionsFor returns the configured exclusion list of an action.
// Actions without an exclusion list (such as list) return nil.
func (c *Config) ExclusionsFor(action string) []string {
	switch action {
	case "install":
		return c.Exclude.Install
	case "uninstall":
		return c.Exclude.Uninstall
	case "reinstall":
		return c.Exclude.Reinstall
	case "build":
		return c.Exclude.Build
	case "rebuild":
		return c.Exclude.Rebuild
	default:
		return nil
	}
}

// CommandTimeout parses Commands.Timeout. An empty value means no timeout.
func (c *Config) CommandTimeout() (time.Duration, error) {
	if c.Commands.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Commands.Timeout)
	if err != nil {
		return 0, fmt.Errorf("commands.timeout: %w", err)
	}
	return d, nil
}
