package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/rehearse/pkg/domain"
)

// New creates a configured application logger.
// It writes to Stderr so log lines never mix with the slide display on Stdout.
// It standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Hooks returns driver callbacks that trace every event at debug level.
func Hooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, string(e.Type), "index", e.Index, "total", e.Total, "method", e.Method)
		},
		OnDispatch: func(ctx context.Context, e *domain.CommandEvent) {
			logger.DebugContext(ctx, string(e.Type), "index", e.Index, "method", e.Method)
		},
		OnOutcome: func(ctx context.Context, e *domain.CommandEvent) {
			logger.DebugContext(ctx, string(e.Type),
				"index", e.Index,
				"outcome", e.Outcome.Status.String(),
				"duration", e.Duration,
			)
		},
	}
}
