package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/rehearse/internal/cli"
	"github.com/aretw0/rehearse/internal/logging"
)

var actionsCmd = &cobra.Command{
	Use:   "actions <deck.md>",
	Short: "List the actions extracted from the deck with their indexes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		logger := logging.NewWithWriter(cmd.ErrOrStderr(), slogLevel(debug))
		return cli.ListActions(cmd.OutOrStdout(), args[0], logger)
	},
}

func init() {
	rootCmd.AddCommand(actionsCmd)
}
