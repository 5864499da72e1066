package output

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title string
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// runSpinner draws a spinner until action returns. Swapped in tests.
var runSpinner = func(ctx context.Context, title string, action func()) error {
	return spinner.New().Context(ctx).Title(title).Action(action).Run()
}

// RunWithSpinner executes action while a spinner is drawn and returns the
// action's error. Without a TTY the action runs directly.
//
// RunWithSpinner always waits for action to return, even when ctx is
// cancelled or the spinner stops early, so callers may read anything the
// action wrote once it returns.
func RunWithSpinner(ctx context.Context, action func() error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{
		title: "Working...",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if !IsTTY() {
		return action()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- action()
	}()

	spinnerErr := runSpinner(ctx, cfg.title, func() {
		select {
		case err := <-errCh:
			errCh <- err
		case <-ctx.Done():
		}
	})

	actionErr := <-errCh
	if spinnerErr != nil && ctx.Err() == nil {
		Debug("spinner stopped early", "error", spinnerErr)
	}
	return actionErr
}
