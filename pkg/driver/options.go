package driver

import (
	"context"
	"log/slog"

	"github.com/aretw0/rehearse/pkg/domain"
	"github.com/aretw0/rehearse/pkg/ports"
)

// Observer decides when a dispatched command is done.
// detect.Detector is the production implementation.
type Observer interface {
	Observe(ctx context.Context, waitFor string) (domain.Outcome, error)
}

// Presenter shows the operator what is about to run.
type Presenter interface {
	Present(ctx context.Context, index int, action domain.Action, slide domain.Slide) error
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(ctx context.Context, index int, action domain.Action, slide domain.Slide) error

func (f PresenterFunc) Present(ctx context.Context, index int, action domain.Action, slide domain.Slide) error {
	return f(ctx, index, action, slide)
}

// Option defines a functional option for configuring the Driver.
type Option func(*Driver)

// WithStore configures where the cursor is persisted.
// If not set, the cursor lives in memory only.
func WithStore(store ports.CursorStore) Option {
	return func(d *Driver) {
		d.store = store
	}
}

// WithTerminal configures the controlled terminal.
func WithTerminal(term ports.Terminal) Option {
	return func(d *Driver) {
		d.term = term
	}
}

// WithObserver configures completion detection.
func WithObserver(o Observer) Option {
	return func(d *Driver) {
		d.observer = o
	}
}

// WithConfirmer configures the source asked before each command.
func WithConfirmer(c ports.Confirmer) Option {
	return func(d *Driver) {
		d.confirmer = c
	}
}

// WithPresenter configures how actions are shown before they run.
func WithPresenter(p Presenter) Option {
	return func(d *Driver) {
		d.presenter = p
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithHooks registers lifecycle callbacks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Driver) {
		d.hooks = hooks
	}
}

// WithForceNonInteractive disables prompting and makes failed or timed-out
// commands abort the run.
func WithForceNonInteractive(force bool) Option {
	return func(d *Driver) {
		d.force = force
	}
}
