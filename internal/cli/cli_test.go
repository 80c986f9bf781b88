package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/rehearse/internal/logging"
	"github.com/aretw0/rehearse/internal/testutils"
	"github.com/aretw0/rehearse/pkg/config"
	"github.com/aretw0/rehearse/pkg/domain"
)

const deck = `# One
.exercise[
~~~bash
echo one
~~~
]
---
# Two
.exercise[
~~~bash false~~~
~~~bash
echo three
~~~
]
`

func writeDeck(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "slides.md")
	require.NoError(t, os.WriteFile(path, []byte(strings.ReplaceAll(deck, "~~~", "```")), 0o644))
	return path
}

func fastConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.Cursor.Path = filepath.Join(dir, "nextstep")
	cfg.Detect.PollInterval = time.Millisecond
	cfg.Detect.Timeout = 5 * time.Millisecond
	cfg.Detect.Settle = 0
	return cfg
}

func readCursor(t *testing.T, cfg *config.Config) string {
	t.Helper()
	data, err := os.ReadFile(cfg.Cursor.Path)
	require.NoError(t, err)
	return string(data)
}

func TestExecute_Interactive(t *testing.T) {
	dir := t.TempDir()
	cfg := fastConfig(dir)
	shell := testutils.NewFakeShell()
	shell.ExitCodes["false"] = 1

	var stdout, stderr bytes.Buffer
	err := Execute(RunOptions{
		DocPath:  writeDeck(t, dir),
		Config:   cfg,
		Stdin:    strings.NewReader("c\n\n"),
		Stdout:   &stdout,
		Stderr:   &stderr,
		Terminal: shell,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"echo one\n", "false\n", "echo three\n"}, shell.Commands())
	assert.Equal(t, "0", readCursor(t, cfg))

	out := stdout.String()
	assert.Equal(t, 2, strings.Count(out, "Shall we execute that snippet above?"), "asked again after the failure")
	assert.Contains(t, out, "[2] Shall we execute")
	assert.Contains(t, out, "All actions done.")
	assert.Contains(t, stderr.String(), "last command failed")
}

func TestExecute_ForcedFailureKeepsCursor(t *testing.T) {
	dir := t.TempDir()
	cfg := fastConfig(dir)
	cfg.NonInteractive = true
	shell := testutils.NewFakeShell()
	shell.ExitCodes["false"] = 1

	err := Execute(RunOptions{
		DocPath:  writeDeck(t, dir),
		Config:   cfg,
		Quiet:    true,
		Stdin:    strings.NewReader(""),
		Stdout:   io.Discard,
		Stderr:   io.Discard,
		Terminal: shell,
	})

	assert.ErrorIs(t, err, domain.ErrCommandFailed)
	assert.Equal(t, "1", readCursor(t, cfg))
}

func TestExecute_ClosedInputIsCleanExit(t *testing.T) {
	dir := t.TempDir()
	cfg := fastConfig(dir)
	shell := testutils.NewFakeShell()

	var stdout bytes.Buffer
	err := Execute(RunOptions{
		DocPath:  writeDeck(t, dir),
		Config:   cfg,
		Stdin:    strings.NewReader("\n"),
		Stdout:   &stdout,
		Stderr:   io.Discard,
		Terminal: shell,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"echo one\n"}, shell.Commands())
	assert.Equal(t, "1", readCursor(t, cfg), "resumes at the unanswered action")
	assert.Contains(t, stdout.String(), "Run again to resume.")
}

func TestExecute_MissingDocument(t *testing.T) {
	err := Execute(RunOptions{
		DocPath: filepath.Join(t.TempDir(), "nope.md"),
		Stderr:  io.Discard,
		Stdout:  io.Discard,
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestListActions(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, ListActions(&out, writeDeck(t, t.TempDir()), nil))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "   0  slide 1   bash  echo one", lines[0])
	assert.Equal(t, "   1  slide 2   bash  false", lines[1])
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "ls", firstLine("ls"))
	assert.Equal(t, "docker run \\ ...", firstLine("docker run \\\n-ti alpine"))
}

func TestPersistence_File(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default().Cursor
	cfg.Path = filepath.Join(t.TempDir(), "nextstep")

	p, err := setupPersistence(ctx, cfg, true, logging.NewNop())
	require.NoError(t, err)
	defer p.release()

	require.NoError(t, p.store.Save(ctx, 4))
	require.NoError(t, ResetCursor(ctx, cfg, logging.NewNop()))

	_, err = p.store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrCursorNotFound)
}

func TestPersistence_RedisLock(t *testing.T) {
	s := miniredis.RunT(t)
	old := lockWait
	lockWait = 150 * time.Millisecond
	t.Cleanup(func() { lockWait = old })

	ctx := context.Background()
	cfg := config.Default().Cursor
	cfg.RedisURL = "redis://" + s.Addr()
	cfg.Name = "workshop"

	first, err := setupPersistence(ctx, cfg, true, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, first.store.Save(ctx, 9))
	assert.True(t, s.Exists("rehearse:lock:workshop"))

	_, err = setupPersistence(ctx, cfg, true, logging.NewNop())
	assert.ErrorIs(t, err, domain.ErrRunLocked)

	// Reset does not need the lock.
	require.NoError(t, ResetCursor(ctx, cfg, logging.NewNop()))
	assert.False(t, s.Exists("rehearse:cursor:workshop"))

	first.release()
	assert.False(t, s.Exists("rehearse:lock:workshop"))

	second, err := setupPersistence(ctx, cfg, true, logging.NewNop())
	require.NoError(t, err)
	second.release()
}

func TestPersistence_BadRedisURL(t *testing.T) {
	cfg := config.Default().Cursor
	cfg.RedisURL = "http://nope"
	_, err := setupPersistence(context.Background(), cfg, false, logging.NewNop())
	assert.ErrorContains(t, err, "invalid redis url")
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, handleExecutionError(nil))
	assert.NoError(t, handleExecutionError(io.EOF))
	assert.NoError(t, handleExecutionError(context.Canceled))
	boom := errors.New("boom")
	assert.ErrorIs(t, handleExecutionError(boom), boom)
}

func TestCreateLogger(t *testing.T) {
	var buf bytes.Buffer
	createLogger(&buf, "warn", false).Info("hidden")
	createLogger(&buf, "warn", false).Warn("shown")
	createLogger(&buf, "error", true).Debug("debug wins")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "debug wins")
}
