// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Workspace is a temporary directory laid out like an educats workspace:
// an educats.toml next to a projects/ root holding module directories.
type Workspace struct {
	t   *testing.T
	Dir string
}

// NewWorkspace creates an empty workspace with its projects/ root.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	w := &Workspace{t: t, Dir: t.TempDir()}
	if err := os.MkdirAll(w.Root(), 0o755); err != nil {
		t.Fatalf("failed to create projects root: %v", err)
	}
	return w
}

// Root returns the projects/ directory.
func (w *Workspace) Root() string {
	return filepath.Join(w.Dir, "projects")
}

// ConfigPath returns the path of the workspace's educats.toml.
func (w *Workspace) ConfigPath() string {
	return filepath.Join(w.Dir, "educats.toml")
}

// Module creates projects/<name> with the given entries and returns its path.
// Entries ending in "/" become directories, anything else an empty JSON file.
func (w *Workspace) Module(name string, entries ...string) string {
	w.t.Helper()
	dir := filepath.Join(w.Root(), name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		w.t.Fatalf("failed to create module %s: %v", name, err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e, "/") {
			if err := os.MkdirAll(filepath.Join(dir, e), 0o755); err != nil {
				w.t.Fatalf("failed to create %s in %s: %v", e, name, err)
			}
			continue
		}
		WriteFile(w.t, dir, e, "{}\n")
	}
	return dir
}

// WriteConfig writes educats.toml with a [modules] section searching the
// projects/ root one level deep, excluding the root itself, followed by
// extra TOML.
func (w *Workspace) WriteConfig(extra string) string {
	w.t.Helper()
	content := fmt.Sprintf("[modules]\nroots = [%q]\ndepth = 1\nmin_depth = 1\n\n%s", filepath.ToSlash(w.Root()), extra)
	return WriteFile(w.t, w.Dir, "educats.toml", content)
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}
