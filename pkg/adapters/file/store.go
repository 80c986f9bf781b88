package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/rehearse/pkg/domain"
)

// DefaultPath is the cursor file used when none is configured.
const DefaultPath = "nextstep"

// Store implements ports.CursorStore as a plain-text file holding one integer.
type Store struct {
	Path string
}

// New creates a new Store at the given path.
// If path is empty, it defaults to "nextstep" in the working directory.
func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{Path: path}
}

// Save writes the cursor atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, cursor int) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure cursor directory: %w", err)
	}

	// Same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.WriteString(strconv.Itoa(cursor)); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(s.Path); err == nil {
		if err := os.Remove(s.Path); err != nil {
			return fmt.Errorf("failed to remove existing cursor file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("failed to rename temp file to cursor file: %w", err)
	}

	return nil
}

// Load reads the cursor file.
func (s *Store) Load(ctx context.Context) (int, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, domain.ErrCursorNotFound
		}
		return 0, fmt.Errorf("failed to read cursor file: %w", err)
	}

	cursor, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid cursor in %s: %w", s.Path, err)
	}
	if cursor < 0 {
		return 0, fmt.Errorf("invalid cursor in %s: negative value %d", s.Path, cursor)
	}
	return cursor, nil
}

// Delete removes the cursor file.
func (s *Store) Delete(ctx context.Context) error {
	err := os.Remove(s.Path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cursor file: %w", err)
	}
	return nil
}
