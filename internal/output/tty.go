package output

import (
	"os"

	"golang.org/x/term"
)

// isTerminal is swapped in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// IsTTY reports whether stdout and stderr are both attached to a terminal.
// Spinners are only drawn when this is true.
func IsTTY() bool {
	return isTerminal()
}
