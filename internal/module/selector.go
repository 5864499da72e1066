package module

import (
	"fmt"
	"strings"

	oerrors "github.com/educats/cli/internal/errors"
)

// Selector chooses which modules of the universe an action targets.
// It is either All or Explicit.
type Selector interface {
	isSelector()
}

// All selects every module in the universe.
type All struct{}

// Explicit selects only the named modules.
type Explicit struct {
	Names NameSet
}

func (All) isSelector()      {}
func (Explicit) isSelector() {}

// SelectAll returns the All selector.
func SelectAll() Selector { return All{} }

// SelectNames returns an Explicit selector, or All when names is empty.
func SelectNames(names ...string) Selector {
	set := NewNameSet(names...)
	if len(set) == 0 {
		return All{}
	}
	return Explicit{Names: set}
}

// SplitNames splits raw flag values on whitespace and commas, so that
// `-m "admin subject"` and `-m admin,subject` both name two modules.
func SplitNames(raw []string) []string {
	var names []string
	for _, r := range raw {
		names = append(names, strings.FieldsFunc(r, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t' || c == '\n'
		})...)
	}
	return names
}

// ParseSelector builds a selector from raw -m flag values. No values
// selects every module; values that contain no name are an error, so a
// blank -m never widens to the whole workspace.
func ParseSelector(raw []string) (Selector, error) {
	names, err := ParseNames(raw)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 && len(names) == 0 {
		return nil, oerrors.NewResolutionError(
			"no module names given to -m",
			"Pass at least one module name, or omit -m to select every module.",
		)
	}
	return SelectNames(names...), nil
}

// ParseNames splits and validates raw name flag values.
func ParseNames(raw []string) ([]string, error) {
	names := SplitNames(raw)
	for _, n := range names {
		if err := ValidateName(n); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// ValidateName rejects strings that cannot be a module directory name.
func ValidateName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return oerrors.NewResolutionError(
			fmt.Sprintf("invalid module name %q", name),
			"Pass directory names as shown by 'educats list', not paths.",
		)
	}
	return nil
}

// Resolution is the outcome of applying a selector to the universe.
type Resolution struct {
	// Selected is the collection the action runs against.
	Selected *Collection

	// Skipped holds universe members left out by the selector or exclusions.
	Skipped *Collection

	// Missing lists explicitly requested names absent from the universe.
	Missing []string
}

// Resolve narrows the universe by sel and exclude.
func Resolve(universe []string, sel Selector, exclude NameSet) (*Resolution, error) {
	all, err := FromPaths(universe)
	if err != nil {
		return nil, err
	}

	var include NameSet
	switch s := sel.(type) {
	case nil, All:
	case Explicit:
		include = s.Names
	default:
		return nil, fmt.Errorf("unsupported selector %T", sel)
	}

	selected, err := FromFilter(universe, include, exclude)
	if err != nil {
		return nil, err
	}

	_, skipped := selected.Compare(all)

	return &Resolution{
		Selected: selected,
		Skipped:  skipped,
		Missing:  all.MissingNames(include),
	}, nil
}
