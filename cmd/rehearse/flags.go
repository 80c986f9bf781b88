package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/rehearse/pkg/config"
)

// loadConfig reads the config file and lays explicitly set flags over it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, _, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	setString := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	setString("cursor", &cfg.Cursor.Path)
	setString("redis", &cfg.Cursor.RedisURL)
	setString("name", &cfg.Cursor.Name)

	if flags.Lookup("target") != nil {
		setString("target", &cfg.Tmux.Target)
		setString("socket", &cfg.Tmux.Socket)
		setString("tmux", &cfg.Tmux.Path)
		setString("prompt", &cfg.Detect.Prompt)
		setString("metrics-addr", &cfg.MetricsAddr)
		if flags.Changed("timeout") {
			cfg.Detect.Timeout, _ = flags.GetDuration("timeout")
		}
		if flags.Changed("poll") {
			cfg.Detect.PollInterval, _ = flags.GetDuration("poll")
		}
		if flags.Changed("non-interactive") {
			cfg.NonInteractive, _ = flags.GetBool("non-interactive")
		}
		if flags.Changed("pretty") {
			cfg.Pretty, _ = flags.GetBool("pretty")
		}
	}

	return cfg, cfg.Validate()
}
