package tmux_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/rehearse/pkg/adapters/tmux"
	"github.com/stretchr/testify/require"
)

func findTmux(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("tmux")
	if err != nil {
		t.Skip("tmux not found in PATH")
	}
	return path
}

func TestRunner_Version(t *testing.T) {
	runner := tmux.NewRunner(findTmux(t), "")
	version, err := runner.Version(context.Background())
	require.NoError(t, err)
	require.True(t, strings.ContainsAny(version, "0123456789"), "version %q should contain digits", version)
}

func TestController_AgainstRealPane(t *testing.T) {
	tmuxPath := findTmux(t)
	socket := filepath.Join(t.TempDir(), "test.sock")
	runner := tmux.NewRunner(tmuxPath, socket)
	ctx := context.Background()

	_, err := runner.Run(ctx, "-f", "/dev/null", "new-session", "-d", "-x", "80", "-y", "24", "--", "/bin/sh")
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = runner.Run(context.Background(), "kill-server") })

	c := tmux.NewController(runner, "")
	require.NoError(t, c.SendKeys(ctx, "echo rehearse-marker\n"))

	require.Eventually(t, func() bool {
		out, err := c.Capture(ctx)
		return err == nil && strings.Count(out, "rehearse-marker") >= 2
	}, 5*time.Second, 50*time.Millisecond)
}
