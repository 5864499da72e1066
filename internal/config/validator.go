package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/educats/cli/internal/module"
	"github.com/educats/cli/internal/runner"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

func (e *ValidationErrors) add(field, format string, args ...any) {
	*e = append(*e, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks field values. It returns ValidationErrors listing every
// problem, or nil.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if len(cfg.Modules.Roots) == 0 {
		errs.add("modules.roots", "at least one root is required")
	}
	for i, root := range cfg.Modules.Roots {
		if strings.TrimSpace(root) == "" {
			errs.add(fmt.Sprintf("modules.roots[%d]", i), "must not be empty or whitespace only")
		}
	}
	if cfg.Modules.Depth < 0 {
		errs.add("modules.depth", "must be >= 0, got %d", cfg.Modules.Depth)
	}
	if cfg.Modules.MinDepth < 0 || cfg.Modules.MinDepth > cfg.Modules.Depth {
		errs.add("modules.min_depth", "must be between 0 and modules.depth (%d), got %d", cfg.Modules.Depth, cfg.Modules.MinDepth)
	}

	for _, action := range []string{"install", "uninstall", "reinstall", "build", "rebuild"} {
		for _, name := range cfg.ExclusionsFor(action) {
			if err := module.ValidateName(name); err != nil {
				errs.add("exclude."+action, "%q is not a module name", name)
			}
		}
	}

	cmds := cfg.Commands
	for field, line := range map[string]string{"commands.install": cmds.Install, "commands.build": cmds.Build} {
		if _, err := runner.Split(line, map[string]string{"CONFIGURATION": "stage"}); err != nil {
			errs.add(field, "%v", err)
		}
	}
	for field, entry := range map[string]string{
		"commands.manifest":  cmds.Manifest,
		"commands.lock_file": cmds.LockFile,
		"commands.cache_dir": cmds.CacheDir,
	} {
		if entry == "" || entry == "." || entry == ".." || strings.ContainsAny(entry, `/\`) {
			errs.add(field, "must be a single file or directory name, got %q", entry)
		}
	}

	if len(cmds.Configurations) == 0 {
		errs.add("commands.configurations", "at least one build configuration is required")
	}
	if !slices.Contains(cmds.Configurations, cmds.DefaultConfiguration) {
		errs.add("commands.default_configuration", "%q is not listed in commands.configurations", cmds.DefaultConfiguration)
	}

	if d, err := cfg.CommandTimeout(); err != nil {
		errs.add("commands.timeout", "must be a duration such as \"10m\"")
	} else if d < 0 {
		errs.add("commands.timeout", "must not be negative")
	}

	// deterministic order for map-driven checks
	slices.SortStableFunc(errs, func(a, b ValidationError) int { return strings.Compare(a.Field, b.Field) })

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RootProblem describes a configured root that cannot be searched.
type RootProblem struct {
	Root string
	Err  error
}

// CheckRoots stats every configured root and returns the ones that are
// missing or not directories. Discovery tolerates these, so they are
// reported by `config vet` rather than failing Validate.
func CheckRoots(cfg *Config) []RootProblem {
	var problems []RootProblem
	for _, root := range cfg.Modules.Roots {
		info, err := os.Stat(root)
		if err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
		if err != nil {
			problems = append(problems, RootProblem{Root: root, Err: err})
		}
	}
	return problems
}
