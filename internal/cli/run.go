package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"

	"github.com/aretw0/rehearse"
	"github.com/aretw0/rehearse/internal/logging"
	"github.com/aretw0/rehearse/internal/presentation/tui"
	"github.com/aretw0/rehearse/pkg/adapters/tmux"
	"github.com/aretw0/rehearse/pkg/config"
	"github.com/aretw0/rehearse/pkg/confirm"
	"github.com/aretw0/rehearse/pkg/detect"
	"github.com/aretw0/rehearse/pkg/domain"
	"github.com/aretw0/rehearse/pkg/driver"
	"github.com/aretw0/rehearse/pkg/metrics"
	"github.com/aretw0/rehearse/pkg/ports"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	DocPath string
	Config  *config.Config
	Debug   bool
	Quiet   bool

	// Stdin, Stdout and Stderr default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Terminal replaces the tmux pane, for tests and dry runs.
	Terminal ports.Terminal
}

func (o *RunOptions) defaults() {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Execute drives the document at opts.DocPath in the configured tmux pane.
// Closing stdin or interrupting the process stops the run cleanly; the
// cursor keeps the position for next time.
func Execute(opts RunOptions) error {
	opts.defaults()
	cfg := opts.Config
	logger := createLogger(opts.Stderr, cfg.LogLevel, opts.Debug)

	doc, err := rehearse.Open(opts.DocPath, logger)
	if err != nil {
		return err
	}
	logger.Info("document loaded", "path", opts.DocPath, "slides", len(doc.Slides), "actions", len(doc.Actions))

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	p, err := setupPersistence(sigCtx, cfg.Cursor, true, logger)
	if err != nil {
		return err
	}
	defer p.release()

	term := opts.Terminal
	if term == nil {
		term = tmux.NewController(tmux.NewRunner(cfg.Tmux.Path, cfg.Tmux.Socket), cfg.Tmux.Target)
	}

	observer := detect.New(term,
		detect.WithPollInterval(cfg.Detect.PollInterval),
		detect.WithTimeout(cfg.Detect.Timeout),
		detect.WithSettle(cfg.Detect.Settle),
		detect.WithPrompt(cfg.Detect.Prompt),
		detect.WithLogger(logger),
		detect.WithProgress(opts.Stdout),
	)

	presenter, err := newPresenter(opts.Stdout, cfg.Pretty)
	if err != nil {
		return err
	}

	hooks := []domain.LifecycleHooks{logging.Hooks(logger)}
	if cfg.MetricsAddr != "" {
		collector := metrics.New()
		hooks = append(hooks, collector.Hooks())
		go func() {
			if err := metrics.Serve(sigCtx, cfg.MetricsAddr, metrics.NewHandler(collector), logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	d := driver.New(doc,
		driver.WithStore(p.store),
		driver.WithTerminal(term),
		driver.WithObserver(observer),
		driver.WithConfirmer(confirm.NewText(opts.Stdin, opts.Stdout)),
		driver.WithPresenter(presenter),
		driver.WithLogger(logger),
		driver.WithHooks(domain.ChainHooks(hooks...)),
		driver.WithForceNonInteractive(cfg.NonInteractive),
	)

	if !opts.Quiet {
		tui.PrintBanner(opts.Stdout, termenv.NewOutput(opts.Stdout).Profile, rehearse.Version)
	}

	runErr := d.Run(sigCtx)
	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}

	if !opts.Quiet {
		logCompletion(opts.Stdout, runErr, sigCtx.Signal())
	}
	return handleExecutionError(runErr)
}

func newPresenter(out io.Writer, pretty bool) (*tui.Presenter, error) {
	if !pretty {
		return tui.NewPresenter(out), nil
	}
	render, err := tui.NewRenderer(tui.Width(out))
	if err != nil {
		return nil, fmt.Errorf("failed to set up markdown rendering: %w", err)
	}
	return tui.NewPresenter(out, tui.WithMarkdown(render)), nil
}

// ListActions prints every action of the document with its index, the
// numbers accepted by the jump answer.
func ListActions(w io.Writer, path string, logger *slog.Logger) error {
	doc, err := rehearse.Open(path, logger)
	if err != nil {
		return err
	}
	for i, a := range doc.Actions {
		fmt.Fprintf(w, "%4d  slide %-3d %-5s %s\n", i, a.SlideID, a.Method, firstLine(a.Payload))
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i] + " ..."
		}
	}
	return s
}
