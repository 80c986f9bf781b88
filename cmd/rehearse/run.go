package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/rehearse/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <deck.md>",
	Short: "Drive the deck from the saved cursor to the end",
	Long: `Shows each command of the deck and, once confirmed, types it into the tmux pane.

At the prompt:
  Enter   run this command
  c       run it and stop asking (until a command fails or times out)
  <n>     jump to action n (see 'rehearse actions')
  other   skip this command

Set WORKSHOP_TEST_FORCE_NONINTERACTIVE=1 to run unattended and abort on the
first failing command.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		debug, _ := cmd.Flags().GetBool("debug")
		quiet, _ := cmd.Flags().GetBool("quiet")

		return cli.Execute(cli.RunOptions{
			DocPath: args[0],
			Config:  cfg,
			Debug:   debug,
			Quiet:   quiet,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("target", "t", "", "tmux target pane (default: the current pane)")
	runCmd.Flags().StringP("socket", "S", "", "tmux server socket path")
	runCmd.Flags().String("tmux", "tmux", "tmux binary")
	runCmd.Flags().String("prompt", "$", "Shell prompt that marks a finished command")
	runCmd.Flags().Duration("timeout", 0, "Give up waiting for a command after this long (default 30s)")
	runCmd.Flags().Duration("poll", 0, "Interval between screen captures (default 1s)")
	runCmd.Flags().Bool("non-interactive", false, "Never prompt; abort on the first failing command")
	runCmd.Flags().Bool("pretty", false, "Render slides as Markdown")
	runCmd.Flags().Bool("quiet", false, "No banner or completion messages")
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	// 'rehearse deck.md' is 'rehearse run deck.md'.
	rootCmd.Args = cobra.MaximumNArgs(1)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runCmd.RunE(cmd, args)
	}
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
