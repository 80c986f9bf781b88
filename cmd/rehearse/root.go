package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rehearse",
	Short: "Rehearse a workshop deck in a live tmux pane",
	Long: `rehearse extracts the commands of a slide deck and types them, one at a time,
into a tmux pane. It waits for each command to finish, checks its exit status,
and remembers where it stopped so the next run resumes from there.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./rehearse.yaml, then $XDG_CONFIG_HOME/rehearse/config.yaml)")
	rootCmd.PersistentFlags().String("cursor", "", "File holding the index of the next action")
	rootCmd.PersistentFlags().String("redis", "", "Keep the cursor in redis (redis://host:port/db) instead of a file")
	rootCmd.PersistentFlags().String("name", "", "Cursor name when using redis")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
