//go:build !unix

package runner

import "os/exec"

// killProcessGroup keeps the default cancellation, which kills the direct
// child only.
func killProcessGroup(_ *exec.Cmd) {}
