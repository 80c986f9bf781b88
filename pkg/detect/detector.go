// Package detect decides when a command sent to the terminal has finished.
//
// The only observable signal of an interactive shell is its screen, so both
// heuristics are text based: a required marker substring, or the shell prompt
// returning at the bottom of the pane. A command whose output happens to end
// with the prompt character mid-execution is indistinguishable from a
// finished one. That limitation is accepted.
package detect

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/rehearse/pkg/domain"
	"github.com/aretw0/rehearse/pkg/ports"
	"github.com/google/uuid"
)

// Detector polls a terminal until the last command completes.
type Detector struct {
	term     ports.Terminal
	logger   *slog.Logger
	progress io.Writer
	interval time.Duration
	timeout  time.Duration
	settle   time.Duration
	prompt   string
	newToken func() string
	sleep    func(ctx context.Context, d time.Duration) error
}

// Option configures a Detector.
type Option func(*Detector)

// WithPollInterval sets the delay before each capture.
func WithPollInterval(d time.Duration) Option {
	return func(det *Detector) {
		det.interval = d
	}
}

// WithTimeout sets the ceiling after which a command is reported as timed out.
func WithTimeout(d time.Duration) Option {
	return func(det *Detector) {
		det.timeout = d
	}
}

// WithSettle sets how long to wait after echoing the exit-code token.
func WithSettle(d time.Duration) Option {
	return func(det *Detector) {
		det.settle = d
	}
}

// WithPrompt sets the shell prompt character sequence (default "$").
func WithPrompt(p string) Option {
	return func(det *Detector) {
		det.prompt = p
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(det *Detector) {
		det.logger = l
	}
}

// WithProgress sets where a dot is written after every inconclusive poll.
func WithProgress(w io.Writer) Option {
	return func(det *Detector) {
		det.progress = w
	}
}

// WithTokenSource overrides the exit-code token generator.
func WithTokenSource(f func() string) Option {
	return func(det *Detector) {
		det.newToken = f
	}
}

// WithSleep overrides how the detector waits between polls.
func WithSleep(f func(ctx context.Context, d time.Duration) error) Option {
	return func(det *Detector) {
		det.sleep = f
	}
}

// New creates a Detector observing term.
func New(term ports.Terminal, opts ...Option) *Detector {
	d := &Detector{
		term:     term,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		progress: io.Discard,
		interval: domain.DefaultPollInterval,
		timeout:  domain.DefaultTimeout,
		settle:   domain.DefaultSettle,
		prompt:   domain.DefaultPrompt,
		newToken: NewToken,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Observe polls the terminal until the command completes or the timeout is
// reached. If waitFor is non-empty and shows up on screen, the command is
// deemed successful without fetching an exit code. Otherwise a returning
// prompt triggers the exit-code protocol.
//
// Transport and protocol failures are returned as errors; a timeout is an
// outcome, not an error.
func (d *Detector) Observe(ctx context.Context, waitFor string) (domain.Outcome, error) {
	for attempt := 0; attempt < d.attempts(); attempt++ {
		if err := d.sleep(ctx, d.interval); err != nil {
			return domain.Outcome{}, err
		}

		screen, err := d.term.Capture(ctx)
		if err != nil {
			return domain.Outcome{}, err
		}

		if waitFor != "" && strings.Contains(screen, waitFor) {
			d.logger.Debug("marker found", "wait_for", waitFor, "attempt", attempt)
			return domain.Success(), nil
		}

		if PromptReturned(screen, d.prompt) {
			code, err := d.FetchExitCode(ctx)
			if err != nil {
				return domain.Outcome{}, err
			}
			d.logger.Debug("prompt returned", "exit_code", code, "attempt", attempt)
			if code == 0 {
				return domain.Success(), nil
			}
			return domain.Failed(code), nil
		}

		fmt.Fprint(d.progress, ".")
	}
	return domain.TimedOut(), nil
}

// FetchExitCode echoes a fresh token followed by the shell's last exit status
// and scans the screen for it.
func (d *Detector) FetchExitCode(ctx context.Context) (int, error) {
	token := d.newToken()
	if err := d.term.SendKeys(ctx, fmt.Sprintf("echo %s $?\n", token)); err != nil {
		return 0, err
	}
	if err := d.sleep(ctx, d.settle); err != nil {
		return 0, err
	}
	screen, err := d.term.Capture(ctx)
	if err != nil {
		return 0, err
	}
	return ParseExitCode(screen, token)
}

func (d *Detector) attempts() int {
	if d.interval <= 0 {
		return 1
	}
	n := int(d.timeout / d.interval)
	if n < 1 {
		n = 1
	}
	return n
}

// ParseExitCode finds the first line starting with token and parses the
// second whitespace-separated field as the exit code.
func ParseExitCode(screen, token string) (int, error) {
	for _, line := range strings.Split(screen, "\n") {
		if !strings.HasPrefix(line, token) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != token {
			return 0, fmt.Errorf("%w: malformed token line %q", domain.ErrProtocol, line)
		}
		code, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrProtocol, err)
		}
		return code, nil
	}
	return 0, fmt.Errorf("%w: token %s not on screen", domain.ErrProtocol, token)
}

// PromptReturned reports whether the screen ends with a newline followed by
// the prompt, ignoring trailing blank space. A screen holding only the
// prompt (right after a clear) also counts.
func PromptReturned(screen, prompt string) bool {
	trimmed := strings.TrimRight(screen, " \t\r\n")
	if trimmed == "" || prompt == "" {
		return false
	}
	return trimmed == prompt || strings.HasSuffix(trimmed, "\n"+prompt)
}

// NewToken returns a random collision-resistant token.
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
