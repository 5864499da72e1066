// Package module models discovered project directories and the ordered,
// name-deduplicated collections the lifecycle actions run against.
package module

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	oerrors "github.com/educats/cli/internal/errors"
)

// Module is one discovered project directory. It is immutable after New.
//
// Two modules are equal when their names match, even if they live in
// different directories. Collections rely on this to deduplicate.
type Module struct {
	relativePath string
	absolutePath string
	name         string
}

// New resolves relativePath against the working directory, following
// symlinks, and fails fast if it does not name an existing directory.
func New(relativePath string) (*Module, error) {
	if relativePath == "" {
		return nil, &oerrors.PathError{Path: relativePath, Err: fmt.Errorf("empty path")}
	}

	absPath, err := filepath.Abs(relativePath)
	if err != nil {
		return nil, &oerrors.PathError{Path: relativePath, Err: err}
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, &oerrors.PathError{Path: relativePath, Err: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, &oerrors.PathError{Path: relativePath, Err: err}
	}
	if !info.IsDir() {
		return nil, &oerrors.PathError{Path: relativePath, Err: fmt.Errorf("not a directory: %s", resolved)}
	}

	return &Module{
		relativePath: relativePath,
		absolutePath: resolved,
		name:         filepath.Base(resolved),
	}, nil
}

// RelativePath returns the path the module was constructed from.
func (m *Module) RelativePath() string { return m.relativePath }

// Path returns the canonical absolute path.
func (m *Module) Path() string { return m.absolutePath }

// Name returns the final segment of the canonical path.
func (m *Module) Name() string { return m.name }

// String implements fmt.Stringer.
func (m *Module) String() string {
	return fmt.Sprintf("Module(%s, %s)", m.name, m.absolutePath)
}

// Equal reports whether both modules have the same name.
func (m *Module) Equal(other *Module) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.name == other.name
}

// Has reports whether the module directory contains the named entry.
func (m *Module) Has(entry string) bool {
	target, err := m.child(entry)
	if err != nil {
		return false
	}
	_, err = os.Lstat(target)
	return err == nil
}

// Delete removes the named child file, or the child directory and all its
// contents. It reports whether the entry is absent afterwards; deleting an
// entry that is already gone is not an error.
func (m *Module) Delete(entry string) (bool, error) {
	target, err := m.child(entry)
	if err != nil {
		return false, err
	}

	if err := os.RemoveAll(target); err != nil {
		return false, fmt.Errorf("deleting %s from %s: %w", entry, m.name, err)
	}

	if _, err := os.Lstat(target); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking %s in %s: %w", entry, m.name, err)
	}
	return true, nil
}

// child joins entry onto the module path. Entry must be a single segment so
// that Has and Delete never reach outside the module directory.
func (m *Module) child(entry string) (string, error) {
	if entry == "" || entry == "." || entry == ".." ||
		strings.ContainsAny(entry, `/\`) || entry != filepath.Base(entry) {
		return "", &oerrors.PathError{Path: entry, Err: fmt.Errorf("entry must be a single path segment")}
	}
	return filepath.Join(m.absolutePath, entry), nil
}
