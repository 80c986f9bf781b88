package ports

import "context"

// CursorStore persists the index of the next action to run.
// This allows a killed run to resume exactly where it left off.
type CursorStore interface {
	// Load returns the persisted cursor.
	// Returns domain.ErrCursorNotFound if nothing was saved yet.
	Load(ctx context.Context) (int, error)

	// Save overwrites the persisted cursor.
	Save(ctx context.Context, cursor int) error
}
