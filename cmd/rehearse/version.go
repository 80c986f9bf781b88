package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/rehearse"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rehearse",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rehearse version %s\n", strings.TrimSpace(rehearse.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
