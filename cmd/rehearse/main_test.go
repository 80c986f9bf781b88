package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// isolate keeps user config files out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("REHEARSE_REDIS_URL", "")
	t.Setenv("WORKSHOP_TEST_FORCE_NONINTERACTIVE", "")
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "rehearse version dev\n", out)
}

func TestActionsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.md")
	deck := strings.ReplaceAll(".exercise[\n~~~bash ls~~~\n~~~wait\nready\n~~~\n]\n", "~~~", "```")
	require.NoError(t, os.WriteFile(path, []byte(deck), 0o644))

	out, err := execute(t, "actions", path)
	require.NoError(t, err)
	assert.Contains(t, out, "   0  slide 1   bash  ls")
	assert.Contains(t, out, "   1  slide 1   wait  ready")
}

func TestResetCommand(t *testing.T) {
	dir := isolate(t)
	cursor := filepath.Join(dir, "step")
	require.NoError(t, os.WriteFile(cursor, []byte("5"), 0o644))

	out, err := execute(t, "reset", "--cursor", cursor)
	require.NoError(t, err)
	assert.Contains(t, out, "Cursor reset.")
	assert.NoFileExists(t, cursor)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("rehearse.yaml", []byte("tmux:\n  target: file\n  socket: /tmp/s\n"), 0o644))

	cmd := &cobra.Command{}
	cmd.Flags().AddFlagSet(runCmd.Flags())
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("cursor", "", "")
	cmd.Flags().String("redis", "", "")
	cmd.Flags().String("name", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--target", "flag", "--timeout", "45s", "--non-interactive"}))
	t.Cleanup(func() {
		_ = runCmd.Flags().Set("target", "")
		_ = runCmd.Flags().Set("timeout", "0s")
		_ = runCmd.Flags().Set("non-interactive", "false")
		runCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	})

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "flag", cfg.Tmux.Target)
	assert.Equal(t, "/tmp/s", cfg.Tmux.Socket)
	assert.Equal(t, 45*time.Second, cfg.Detect.Timeout)
	assert.True(t, cfg.NonInteractive)
	assert.Equal(t, time.Second, cfg.Detect.PollInterval)
}
