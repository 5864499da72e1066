// Package dispatch runs lifecycle actions against a resolved module collection.
package dispatch

import (
	"fmt"
	"strings"
)

// Action is a user-facing lifecycle command.
type Action int

const (
	Install Action = iota
	Uninstall
	Reinstall
	Build
	Rebuild
	List
)

var actionNames = map[Action]string{
	Install:   "install",
	Uninstall: "uninstall",
	Reinstall: "reinstall",
	Build:     "build",
	Rebuild:   "rebuild",
	List:      "list",
}

// Actions returns every action in declaration order.
func Actions() []Action {
	return []Action{Install, Uninstall, Reinstall, Build, Rebuild, List}
}

// String returns the command name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Mutating reports whether the action changes module directories.
func (a Action) Mutating() bool {
	return a != List
}

// Steps returns the ordered steps the action expands to.
func (a Action) Steps() []Step {
	switch a {
	case Install:
		return []Step{StepInstall}
	case Uninstall:
		return []Step{StepUninstall}
	case Reinstall:
		return []Step{StepUninstall, StepInstall}
	case Build:
		return []Step{StepBuild}
	case Rebuild:
		return []Step{StepUninstall, StepInstall, StepBuild}
	case List:
		return []Step{StepList}
	default:
		return nil
	}
}

// ParseAction maps a command name to its Action.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// Step is one unit of work performed on a single module.
type Step int

const (
	StepInstall Step = iota
	StepUninstall
	StepBuild
	StepList
)

// String returns the step name.
func (s Step) String() string {
	switch s {
	case StepInstall:
		return "install"
	case StepUninstall:
		return "uninstall"
	case StepBuild:
		return "build"
	case StepList:
		return "list"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}
