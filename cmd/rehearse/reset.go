package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/rehearse/internal/cli"
	"github.com/aretw0/rehearse/internal/logging"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved cursor so the next run starts at the first action",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		debug, _ := cmd.Flags().GetBool("debug")
		logger := logging.NewWithWriter(cmd.ErrOrStderr(), slogLevel(debug))

		if err := cli.ResetCursor(cmd.Context(), cfg.Cursor, logger); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ">>> Cursor reset.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func slogLevel(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
