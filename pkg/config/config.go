// Package config loads run settings from an optional YAML file and the
// environment. Command-line flags are layered on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/rehearse/pkg/adapters/file"
	"github.com/aretw0/rehearse/pkg/domain"
	"github.com/aretw0/rehearse/pkg/driver"
)

const (
	// LocalFile is looked up in the working directory.
	LocalFile = "rehearse.yaml"
	// AppName names the directory under $XDG_CONFIG_HOME.
	AppName = "rehearse"
	// EnvRedisURL selects the redis cursor backend.
	EnvRedisURL = "REHEARSE_REDIS_URL"
)

// Config holds everything a run needs besides the document itself.
type Config struct {
	Cursor         CursorConfig `mapstructure:"cursor"`
	Tmux           TmuxConfig   `mapstructure:"tmux"`
	Detect         DetectConfig `mapstructure:"detect"`
	NonInteractive bool         `mapstructure:"non_interactive"`
	Pretty         bool         `mapstructure:"pretty"`
	MetricsAddr    string       `mapstructure:"metrics_addr"`
	LogLevel       string       `mapstructure:"log_level"`
}

// CursorConfig selects where the cursor is kept. A non-empty RedisURL wins
// over Path.
type CursorConfig struct {
	Path     string        `mapstructure:"path"`
	RedisURL string        `mapstructure:"redis_url"`
	Name     string        `mapstructure:"name"`
	TTL      time.Duration `mapstructure:"ttl"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
}

// TmuxConfig locates the controlled pane.
type TmuxConfig struct {
	Path   string `mapstructure:"path"`
	Socket string `mapstructure:"socket"`
	Target string `mapstructure:"target"`
}

// DetectConfig tunes completion detection.
type DetectConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Settle       time.Duration `mapstructure:"settle"`
	Prompt       string        `mapstructure:"prompt"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Cursor: CursorConfig{
			Path:    file.DefaultPath,
			Name:    "default",
			LockTTL: time.Hour,
		},
		Tmux: TmuxConfig{Path: "tmux"},
		Detect: DetectConfig{
			PollInterval: domain.DefaultPollInterval,
			Timeout:      domain.DefaultTimeout,
			Settle:       domain.DefaultSettle,
			Prompt:       domain.DefaultPrompt,
		},
		LogLevel: "info",
	}
}

// SearchPaths lists the files Load tries when no explicit path is given,
// in order.
func SearchPaths() []string {
	return []string{
		LocalFile,
		filepath.Join(xdg.ConfigHome, AppName, "config.yaml"),
	}
}

// Load builds the configuration. An explicit path must exist; otherwise the
// first existing file from SearchPaths is used, and none is fine.
// It returns the file actually read, or "" when defaults were used.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	source := path
	if source == "" {
		for _, candidate := range SearchPaths() {
			if _, err := os.Stat(candidate); err == nil {
				source = candidate
				break
			}
		}
	}

	if source != "" {
		if err := decodeFile(source, cfg); err != nil {
			return nil, "", err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, source, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if raw == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if url := os.Getenv(EnvRedisURL); url != "" {
		cfg.Cursor.RedisURL = url
	}
	if driver.ForcedFromEnv() {
		cfg.NonInteractive = true
	}
}

// Validate rejects settings that would make a run misbehave.
func (c *Config) Validate() error {
	var errs []error
	if c.Detect.PollInterval <= 0 {
		errs = append(errs, errors.New("detect.poll_interval must be positive"))
	}
	if c.Detect.Timeout < c.Detect.PollInterval {
		errs = append(errs, errors.New("detect.timeout must be at least detect.poll_interval"))
	}
	if c.Detect.Settle < 0 {
		errs = append(errs, errors.New("detect.settle must not be negative"))
	}
	if strings.TrimSpace(c.Detect.Prompt) == "" {
		errs = append(errs, errors.New("detect.prompt must not be empty"))
	}
	if c.Cursor.Path == "" && c.Cursor.RedisURL == "" {
		errs = append(errs, errors.New("cursor.path or cursor.redis_url is required"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown log_level %q", name)
	}
	return level, nil
}
