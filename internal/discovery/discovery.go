// Package discovery walks configured search roots and collects candidate
// module directories.
//
// Traversal is depth-first and pre-order. Children are visited in lexical
// order, so the output is reproducible for a given filesystem state. Depth 0
// is the root itself. Directories whose name is ignored are pruned: they are
// neither returned nor descended into.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	oerrors "github.com/educats/cli/internal/errors"
)

// Options configures a discovery run.
type Options struct {
	// Roots are searched in order.
	Roots []string

	// MaxDepth is how many levels below each root to descend (0 = root only).
	MaxDepth int

	// MinDepth is the shallowest depth that is returned. Directories above it
	// are still traversed.
	MinDepth int

	// Ignore lists directory names that are pruned wherever they occur.
	Ignore []string
}

// Result contains the discovered directories and non-fatal errors.
type Result struct {
	// Paths are the candidate module directories, each joined onto its root.
	Paths []string

	// Errors holds one *errors.DiscoveryError per unreadable root or subdirectory.
	Errors []error
}

// Discover searches every root and returns the candidate directories.
// An unreadable root is recorded in Result.Errors and the remaining roots are
// still searched. Only invalid options return an error.
func Discover(opts Options) (*Result, error) {
	if opts.MaxDepth < 0 {
		return nil, oerrors.Wrap(oerrors.ErrConfig, fmt.Sprintf("depth must be >= 0, got %d", opts.MaxDepth))
	}
	if opts.MinDepth < 0 || opts.MinDepth > opts.MaxDepth {
		return nil, oerrors.Wrap(oerrors.ErrConfig,
			fmt.Sprintf("min depth must be between 0 and depth (%d), got %d", opts.MaxDepth, opts.MinDepth))
	}

	ignore := make(map[string]bool, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignore[name] = true
	}

	w := &walker{opts: opts, ignore: ignore, result: &Result{Paths: make([]string, 0)}}
	for _, root := range opts.Roots {
		w.walkRoot(root)
	}
	return w.result, nil
}

type walker struct {
	opts   Options
	ignore map[string]bool
	result *Result
}

func (w *walker) walkRoot(root string) {
	info, err := os.Stat(root)
	if err != nil {
		w.fail(root, err)
		return
	}
	if !info.IsDir() {
		w.fail(root, fmt.Errorf("not a directory"))
		return
	}
	if w.ignored(root) {
		return
	}
	w.visit(root, 0)
}

// visit records dir and descends into its subdirectories.
func (w *walker) visit(dir string, depth int) {
	if depth >= w.opts.MinDepth {
		w.result.Paths = append(w.result.Paths, dir)
	}
	if depth == w.opts.MaxDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.fail(dir, err)
		return
	}

	// os.ReadDir returns entries sorted by filename.
	for _, e := range entries {
		if !e.IsDir() || w.ignore[e.Name()] {
			continue
		}
		w.visit(filepath.Join(dir, e.Name()), depth+1)
	}
}

func (w *walker) ignored(path string) bool {
	return w.ignore[filepath.Base(filepath.Clean(path))]
}

func (w *walker) fail(path string, err error) {
	w.result.Errors = append(w.result.Errors, &oerrors.DiscoveryError{Root: path, Err: err})
}
