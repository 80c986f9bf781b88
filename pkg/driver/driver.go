package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/rehearse/internal/logging"
	"github.com/aretw0/rehearse/pkg/adapters/memory"
	"github.com/aretw0/rehearse/pkg/domain"
	"github.com/aretw0/rehearse/pkg/ports"
)

// ErrNoTerminal is returned by Run when no terminal was configured.
var ErrNoTerminal = errors.New("driver: no terminal configured")

// Driver walks the actions of a document, one at a time.
type Driver struct {
	doc *domain.Document

	store     ports.CursorStore
	term      ports.Terminal
	observer  Observer
	confirmer ports.Confirmer
	presenter Presenter
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	force     bool
}

// New creates a Driver for doc.
// Forced non-interactive mode defaults to the WORKSHOP_TEST_FORCE_NONINTERACTIVE
// environment variable; WithForceNonInteractive overrides it.
func New(doc *domain.Document, opts ...Option) *Driver {
	d := &Driver{
		doc:    doc,
		logger: logging.NewNop(),
		force:  ForcedFromEnv(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.store == nil {
		d.store = memory.NewStore()
	}
	if d.confirmer == nil {
		d.confirmer = ports.ConfirmFunc(func(context.Context, int) (domain.Decision, error) {
			return domain.Proceed(), nil
		})
	}
	return d
}

// ForcedFromEnv reports whether the environment forces a non-interactive run.
// Any value other than empty, "0" or "false" counts as set.
func ForcedFromEnv() bool {
	v := os.Getenv(domain.EnvForceNonInteractive)
	if v == "" {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return true
}

// Run drives the document from the persisted cursor to the end.
//
// Operator input ending (io.EOF from the confirmer) and context cancellation
// stop the run with the cursor left on the current action.
func (d *Driver) Run(ctx context.Context) error {
	if d.term == nil {
		return ErrNoTerminal
	}
	if d.observer == nil {
		return errors.New("driver: no observer configured")
	}

	actions := d.doc.Actions
	total := len(actions)
	cursor := d.loadCursor(ctx)
	interactive := !d.force
	var mods domain.DeferredModifiers

	for cursor < total {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.saveCursor(ctx, cursor); err != nil {
			return err
		}

		action := actions[cursor]
		d.emitStep(ctx, cursor, total, action)

		switch action.Method {
		case domain.MethodWait:
			mods.WaitFor = strings.TrimSpace(action.Payload)
			d.logger.Info("setting wait condition", "wait_for", mods.WaitFor)
			cursor++
			continue
		case domain.MethodKeys:
			mods.StopKeys = strings.TrimSpace(action.Payload)
			d.logger.Info("setting stop keys", "keys", mods.StopKeys)
			cursor++
			continue
		}

		if err := d.present(ctx, cursor, action); err != nil {
			return err
		}
		if mods.WaitFor != "" {
			d.logger.Info("waiting for", "wait_for", mods.WaitFor)
		}
		if mods.StopKeys != "" {
			d.logger.Info("will stop with", "keys", mods.StopKeys)
		}

		if interactive {
			decision, err := d.confirmer.Confirm(ctx, cursor)
			if err != nil {
				return err
			}
			switch decision.Kind {
			case domain.DecisionProceedNonInteractive:
				interactive = false
			case domain.DecisionJump:
				d.logger.Debug("jumping", "from", cursor, "to", decision.Index)
				cursor = decision.Index
				continue
			case domain.DecisionSkip:
				d.logger.Debug("skipping", "index", cursor)
				cursor++
				continue
			}
		}

		if action.Method != domain.MethodBash {
			d.logger.Warn("do not know how to handle action", "method", action.Method, "payload", action.Payload)
			cursor++
			continue
		}

		command := NormalizeCommand(action.Payload)
		outcome, err := d.dispatch(ctx, cursor, action.Method, command, mods.WaitFor)
		if err != nil {
			return err
		}

		switch outcome.Status {
		case domain.OutcomeSuccess:
			if mods.StopKeys != "" {
				if err := d.stop(ctx, mods.StopKeys); err != nil {
					return err
				}
			}
			mods.Clear()
		case domain.OutcomeFailed:
			d.logger.Warn("last command failed", "index", cursor, "exit_code", outcome.ExitCode)
			if d.force {
				return &domain.CommandError{Index: cursor, Command: strings.TrimSpace(command), Code: outcome.ExitCode}
			}
			interactive = true
		case domain.OutcomeTimedOut:
			d.logger.Warn("last command timed out", "index", cursor)
			if d.force {
				return &domain.CommandError{Index: cursor, Command: strings.TrimSpace(command), TimedOut: true}
			}
			interactive = true
		}
		cursor++
	}

	if err := d.saveCursor(ctx, cursor); err != nil {
		return err
	}
	d.logger.Info("all actions done, resetting cursor", "total", total)
	return d.saveCursor(ctx, 0)
}

// NormalizeCommand prepares a bash payload for typing into a shell: leading
// whitespace is stripped from every continuation line and a trailing newline
// submits the command.
func NormalizeCommand(payload string) string {
	lines := strings.Split(strings.TrimSpace(payload), "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = strings.TrimLeft(lines[i], " \t")
	}
	return strings.Join(lines, "\n") + "\n"
}

func (d *Driver) loadCursor(ctx context.Context) int {
	cursor, err := d.store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrCursorNotFound):
		d.logger.Warn("no saved cursor, starting from 0")
		return 0
	case err != nil:
		d.logger.Warn("could not read saved cursor, starting from 0", "error", err)
		return 0
	case cursor < 0:
		d.logger.Warn("saved cursor is negative, starting from 0", "cursor", cursor)
		return 0
	}
	d.logger.Info("loaded next step", "cursor", cursor)
	return cursor
}

func (d *Driver) saveCursor(ctx context.Context, cursor int) error {
	if err := d.store.Save(ctx, cursor); err != nil {
		return fmt.Errorf("failed to persist cursor %d: %w", cursor, err)
	}
	d.logger.Debug("cursor saved", "cursor", cursor)
	return nil
}

func (d *Driver) present(ctx context.Context, index int, action domain.Action) error {
	if d.presenter == nil {
		return nil
	}
	slide, _ := d.doc.Slide(action.SlideID)
	return d.presenter.Present(ctx, index, action, slide)
}

func (d *Driver) dispatch(ctx context.Context, index int, method, command, waitFor string) (domain.Outcome, error) {
	event := &domain.CommandEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventDispatch},
		Index:     index,
		Method:    method,
		Command:   command,
	}
	if d.hooks.OnDispatch != nil {
		d.hooks.OnDispatch(ctx, event)
	}

	d.logger.Info("running", "index", index, "command", strings.TrimSpace(command))
	if err := d.term.SendKeys(ctx, command); err != nil {
		return domain.Outcome{}, err
	}
	outcome, err := d.observer.Observe(ctx, waitFor)
	if err != nil {
		return domain.Outcome{}, err
	}

	if d.hooks.OnOutcome != nil {
		done := *event
		done.Timestamp = time.Now()
		done.Type = domain.EventOutcome
		done.Outcome = outcome
		done.Duration = done.Timestamp.Sub(event.Timestamp)
		d.hooks.OnOutcome(ctx, &done)
	}
	return outcome, nil
}

// stop sends the deferred terminating keystroke and lets it settle. Only an
// error from the settle matters, not its outcome.
func (d *Driver) stop(ctx context.Context, keys string) error {
	data, mapped := domain.ResolveKeys(keys)
	if mapped {
		d.logger.Info("mapping keys", "from", keys, "to", fmt.Sprintf("%q", data))
	}
	if err := d.term.SendKeys(ctx, data); err != nil {
		return err
	}
	_, err := d.observer.Observe(ctx, "")
	return err
}

func (d *Driver) emitStep(ctx context.Context, index, total int, action domain.Action) {
	if d.hooks.OnStep == nil {
		return
	}
	d.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepEnter},
		Index:     index,
		Total:     total,
		Method:    action.Method,
	})
}
