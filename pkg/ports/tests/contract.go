package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/rehearse/pkg/domain"
	"github.com/aretw0/rehearse/pkg/ports"
)

// RunCursorStoreContract verifies that an adapter complies with ports.CursorStore.
// The store must be empty when handed over.
func RunCursorStoreContract(t *testing.T, store ports.CursorStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx)
		if !errors.Is(err, domain.ErrCursorNotFound) {
			t.Fatalf("expected ErrCursorNotFound on empty store, got %v", err)
		}
	})

	t.Run("Save_Load", func(t *testing.T) {
		if err := store.Save(ctx, 7); err != nil {
			t.Fatalf("unexpected error saving cursor: %v", err)
		}
		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading cursor: %v", err)
		}
		if got != 7 {
			t.Errorf("cursor mismatch: got %d, want 7", got)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		for _, v := range []int{3, 12, 0} {
			if err := store.Save(ctx, v); err != nil {
				t.Fatalf("unexpected error saving cursor %d: %v", v, err)
			}
			got, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("unexpected error loading cursor: %v", err)
			}
			if got != v {
				t.Errorf("cursor mismatch: got %d, want %d", got, v)
			}
		}
	})
}
