package ports

import "context"

// Terminal is the controlled terminal session.
// Failures of the underlying transport are reported wrapped in
// domain.ErrControlChannel.
type Terminal interface {
	// SendKeys delivers text to the session as literal keystrokes.
	SendKeys(ctx context.Context, text string) error

	// Capture returns the currently visible contents of the session.
	Capture(ctx context.Context) (string, error)
}
