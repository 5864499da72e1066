// Package errors provides sentinel and structured errors for the educats CLI.
package errors

import (
	"fmt"
	"strings"
)

// DetailError captures structured error information for user-facing failures.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file or directory the error refers to (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a configuration error with details.
func NewConfigError(message, location, hint string) error {
	return &DetailError{
		Type:     "configuration failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrConfig,
	}
}

// NewResolutionError creates a module resolution error with details.
func NewResolutionError(message, hint string) error {
	return &DetailError{
		Type:    "invalid module selection",
		Message: message,
		Hint:    hint,
		Cause:   ErrResolution,
	}
}

// PathError reports a path that could not be resolved to a module directory.
type PathError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("invalid module path %q: %v", e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *PathError) Unwrap() []error {
	return []error{ErrInvalidPath, e.Err}
}

// DiscoveryError reports a search root or subdirectory that could not be read.
type DiscoveryError struct {
	Root string
	Err  error
}

// Error implements the error interface.
func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("cannot search %s: %v", e.Root, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *DiscoveryError) Unwrap() []error {
	return []error{ErrDiscovery, e.Err}
}

// CommandError captures a failed external command invocation.
// ExitCode is -1 when the command could not be started at all, or when it
// was killed by a signal.
type CommandError struct {
	Command  string
	Dir      string
	ExitCode int
	Stderr   string
	Err      error

	// Interrupted is set when the command was killed on timeout or
	// cancellation; Err says which.
	Interrupted bool
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Interrupted {
		return fmt.Sprintf("%q in %s was stopped: %v", e.Command, e.Dir, e.Err)
	}
	if e.ExitCode < 0 {
		return fmt.Sprintf("%q in %s could not start: %v", e.Command, e.Dir, e.Err)
	}
	return fmt.Sprintf("%q in %s exited with code %d", e.Command, e.Dir, e.ExitCode)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *CommandError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCommand}
	}
	return []error{ErrCommand, e.Err}
}

// StderrLines returns the captured stderr split into non-empty lines.
func (e *CommandError) StderrLines() []string {
	var lines []string
	for _, line := range strings.Split(e.Stderr, "\n") {
		if line = strings.TrimRight(line, "\r"); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
