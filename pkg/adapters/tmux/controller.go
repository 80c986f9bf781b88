package tmux

import (
	"context"
	"fmt"

	"github.com/aretw0/rehearse/pkg/domain"
)

// Executor runs a tmux subcommand. *Runner is the production implementation.
type Executor interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// Controller implements ports.Terminal on top of a tmux pane.
type Controller struct {
	exec   Executor
	target string
}

// NewController creates a controller for target (a tmux target-pane such as
// "demo:0.1"). An empty target addresses the current pane.
func NewController(exec Executor, target string) *Controller {
	return &Controller{exec: exec, target: target}
}

// SendKeys sends text as literal keystrokes; a newline acts as Enter.
func (c *Controller) SendKeys(ctx context.Context, text string) error {
	args := []string{"send-keys"}
	args = append(args, c.targetArgs()...)
	args = append(args, "-l", "--", text)
	if _, err := c.exec.Run(ctx, args...); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrControlChannel, err)
	}
	return nil
}

// Capture returns the visible pane content.
func (c *Controller) Capture(ctx context.Context) (string, error) {
	args := []string{"capture-pane", "-p"}
	args = append(args, c.targetArgs()...)
	out, err := c.exec.Run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrControlChannel, err)
	}
	return out, nil
}

// Target returns the configured target pane.
func (c *Controller) Target() string {
	return c.target
}

func (c *Controller) targetArgs() []string {
	if c.target == "" {
		return nil
	}
	return []string{"-t", c.target}
}
