// Package tmux drives a tmux pane through the tmux command-line client.
package tmux

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes tmux commands, optionally against a specific server socket.
type Runner struct {
	tmuxPath   string
	socketPath string
}

// NewRunner creates a Runner bound to the given tmux binary and socket path.
// An empty tmuxPath means "tmux" from $PATH; an empty socketPath means the
// default server of the current user.
func NewRunner(tmuxPath, socketPath string) *Runner {
	if tmuxPath == "" {
		tmuxPath = "tmux"
	}
	return &Runner{
		tmuxPath:   tmuxPath,
		socketPath: socketPath,
	}
}

// Run executes a tmux command with the given context and arguments and
// returns its stdout. If the command fails, the error carries stderr.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	var fullArgs []string
	if r.socketPath != "" {
		fullArgs = append(fullArgs, "-S", r.socketPath)
	}
	fullArgs = append(fullArgs, args...)
	cmd := exec.CommandContext(ctx, r.tmuxPath, fullArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		op := ""
		if len(args) > 0 {
			op = args[0]
		}
		return "", &Error{
			Op:     op,
			Args:   fullArgs,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	return stdout.String(), nil
}

// Version runs "tmux -V" and returns the version string (e.g. "3.4").
func (r *Runner) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, r.tmuxPath, "-V")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &Error{Op: "-V", Args: []string{"-V"}, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}

	// Output is like "tmux 3.4" or "tmux next-3.5"
	return strings.TrimPrefix(strings.TrimSpace(stdout.String()), "tmux "), nil
}

// SocketPath returns the socket path used by this runner.
func (r *Runner) SocketPath() string {
	return r.socketPath
}

// TmuxPath returns the path to the tmux binary.
func (r *Runner) TmuxPath() string {
	return r.tmuxPath
}

// Error represents a tmux command failure.
type Error struct {
	Op     string
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("tmux %s failed: %v", e.Op, e.Err)
	if e.Stderr != "" {
		msg += "\nstderr: " + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
