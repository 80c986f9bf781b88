package domain

import "time"

// Defaults for completion detection.
const (
	DefaultPollInterval = time.Second
	DefaultTimeout      = 30 * time.Second
	DefaultSettle       = 500 * time.Millisecond
	DefaultPrompt       = "$"
)

// EnvForceNonInteractive forces a non-interactive run and turns command
// failures and timeouts into fatal errors.
const EnvForceNonInteractive = "WORKSHOP_TEST_FORCE_NONINTERACTIVE"
