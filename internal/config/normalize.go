package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOutput()
	c.normalizeEncoding()
	c.normalizeBinaries()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.WorkDir = strings.TrimSpace(c.Paths.WorkDir)
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeOutput() {
	c.Output.Suffix = strings.TrimSpace(c.Output.Suffix)
}

func (c *Config) normalizeEncoding() {
	c.Encoding.SegmentContainer = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Encoding.SegmentContainer)), ".")
	if c.Encoding.SegmentContainer == "" {
		c.Encoding.SegmentContainer = defaultSegmentContainer
	}
	c.Encoding.VideoCodec = strings.TrimSpace(c.Encoding.VideoCodec)
	if c.Encoding.VideoCodec == "" {
		c.Encoding.VideoCodec = defaultVideoCodec
	}
	c.Encoding.AudioCodec = strings.TrimSpace(c.Encoding.AudioCodec)
	if c.Encoding.AudioCodec == "" {
		c.Encoding.AudioCodec = defaultAudioCodec
	}
	c.Encoding.ExtractPreset = strings.TrimSpace(c.Encoding.ExtractPreset)
	if c.Encoding.ExtractPreset == "" {
		c.Encoding.ExtractPreset = defaultExtractPreset
	}
	c.Encoding.ConcatPreset = strings.TrimSpace(c.Encoding.ConcatPreset)
	if c.Encoding.ConcatPreset == "" {
		c.Encoding.ConcatPreset = defaultConcatPreset
	}
	c.Encoding.ConcatAudioBitrate = strings.TrimSpace(c.Encoding.ConcatAudioBitrate)
	if c.Encoding.ConcatAudioBitrate == "" {
		c.Encoding.ConcatAudioBitrate = defaultConcatAudioBitrate
	}
}

func (c *Config) normalizeBinaries() {
	c.Binaries.FFmpeg = strings.TrimSpace(c.Binaries.FFmpeg)
	if value, ok := os.LookupEnv("SILENCECUT_FFMPEG"); ok && strings.TrimSpace(value) != "" {
		c.Binaries.FFmpeg = strings.TrimSpace(value)
	}
	if c.Binaries.FFmpeg == "" {
		c.Binaries.FFmpeg = defaultFFmpegBinary
	}
	c.Binaries.FFprobe = strings.TrimSpace(c.Binaries.FFprobe)
	if value, ok := os.LookupEnv("SILENCECUT_FFPROBE"); ok && strings.TrimSpace(value) != "" {
		c.Binaries.FFprobe = strings.TrimSpace(value)
	}
	if c.Binaries.FFprobe == "" {
		c.Binaries.FFprobe = defaultFFprobeBinary
	}
}

func (c *Config) normalizeHistory() error {
	var err error
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath()
	}
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
