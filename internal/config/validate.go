package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	minThresholdDB = -120.0
	maxThresholdDB = 0.0
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDetection(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDetection() error {
	d := c.Detection
	if math.IsNaN(d.ThresholdDB) || d.ThresholdDB < minThresholdDB || d.ThresholdDB > maxThresholdDB {
		return fmt.Errorf("detection.threshold_db must be between %.0f and %.0f dB, got %g", minThresholdDB, maxThresholdDB, d.ThresholdDB)
	}
	if math.IsNaN(d.MinSilenceSeconds) || math.IsInf(d.MinSilenceSeconds, 0) || d.MinSilenceSeconds <= 0 {
		return fmt.Errorf("detection.min_silence_seconds must be positive, got %g", d.MinSilenceSeconds)
	}
	if math.IsNaN(d.PaddingSeconds) || math.IsInf(d.PaddingSeconds, 0) || d.PaddingSeconds < 0 {
		return fmt.Errorf("detection.padding_seconds must be zero or positive, got %g", d.PaddingSeconds)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.Suffix == "" {
		return errors.New("output.suffix must be set")
	}
	if strings.ContainsAny(c.Output.Suffix, `/\`) {
		return fmt.Errorf("output.suffix must not contain path separators, got %q", c.Output.Suffix)
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if c.Encoding.ConcatCRF < 0 || c.Encoding.ConcatCRF > 51 {
		return fmt.Errorf("encoding.concat_crf must be between 0 and 51, got %d", c.Encoding.ConcatCRF)
	}
	if strings.ContainsAny(c.Encoding.SegmentContainer, `/\ `) {
		return fmt.Errorf("encoding.segment_container must be a bare extension, got %q", c.Encoding.SegmentContainer)
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
