package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"silencecut/internal/config"
	"silencecut/internal/history"
	"silencecut/internal/logging"
	"silencecut/internal/trim"
)

// cliFlags holds values bound to command-line flags. Only flags the user
// actually set override the configuration.
type cliFlags struct {
	output      string
	suffix      string
	threshold   float64
	minDuration float64
	padding     float64
	verbose     bool
	noHistory   bool
}

type commandContext struct {
	configFlag *string
	flags      *cliFlags

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string, flags *cliFlags) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		flags:      flags,
	}
}

func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(c.configFlagValue())
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyOverrides(cmd, cfg); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) configFlagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	if cmd == nil {
		return nil
	}
	flags := cmd.Flags()
	changed := false
	if flags.Changed("threshold") {
		cfg.Detection.ThresholdDB = c.flags.threshold
		changed = true
	}
	if flags.Changed("min-duration") {
		cfg.Detection.MinSilenceSeconds = c.flags.minDuration
		changed = true
	}
	if flags.Changed("padding") {
		cfg.Detection.PaddingSeconds = c.flags.padding
		changed = true
	}
	if flags.Changed("suffix") {
		cfg.Output.Suffix = c.flags.suffix
		changed = true
	}
	if c.flags.noHistory {
		cfg.History.Enabled = false
	}
	if !changed {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, func() error, error) {
	cfg, err := c.ensureConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return logging.NewFromConfig(cfg, cmd.ErrOrStderr(), c.flags.verbose)
}

// request builds a trim request from the effective configuration.
func (c *commandContext) request(cfg *config.Config, input string) trim.Request {
	return trim.Request{
		Input:             input,
		Output:            strings.TrimSpace(c.flags.output),
		Suffix:            cfg.Output.Suffix,
		ThresholdDB:       cfg.Detection.ThresholdDB,
		MinSilenceSeconds: cfg.Detection.MinSilenceSeconds,
		PaddingSeconds:    cfg.Detection.PaddingSeconds,
	}
}

// openRecorder opens the history ledger when enabled. A store that cannot be
// opened is reported and the run proceeds without history.
func (c *commandContext) openRecorder(ctx context.Context, cfg *config.Config, logger *slog.Logger) (trim.Recorder, func()) {
	if !cfg.History.Enabled {
		return nil, func() {}
	}
	store, err := history.Open(ctx, cfg.History.Path)
	if err != nil {
		logging.WarnWithContext(logger, "history unavailable", "history_open_failed",
			logging.String("path", cfg.History.Path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the history database or pass --no-history"),
			logging.String(logging.FieldImpact, "run will not be recorded"),
		)
		return nil, func() {}
	}
	return store, func() { _ = store.Close() }
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
