package ports

import (
	"context"

	"github.com/aretw0/rehearse/pkg/domain"
)

// Confirmer is asked before each effectful action while the run is interactive.
type Confirmer interface {
	Confirm(ctx context.Context, index int) (domain.Decision, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, index int) (domain.Decision, error)

func (f ConfirmFunc) Confirm(ctx context.Context, index int) (domain.Decision, error) {
	return f(ctx, index)
}
