package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Detection contains the silencedetect parameters and keep-segment padding.
type Detection struct {
	ThresholdDB       float64 `toml:"threshold_db"`
	MinSilenceSeconds float64 `toml:"min_silence_seconds"`
	PaddingSeconds    float64 `toml:"padding_seconds"`
}

// Output contains configuration for derived output paths.
type Output struct {
	Suffix string `toml:"suffix"`
}

// Encoding contains the re-encode fallbacks used when stream copy fails.
type Encoding struct {
	// SegmentContainer is the file extension used for intermediate fragments.
	SegmentContainer string `toml:"segment_container"`
	VideoCodec       string `toml:"video_codec"`
	AudioCodec       string `toml:"audio_codec"`
	// ExtractPreset is the x264 preset for per-segment re-encodes.
	ExtractPreset string `toml:"extract_preset"`
	// ConcatPreset and ConcatCRF drive the concatenation re-encode.
	ConcatPreset       string `toml:"concat_preset"`
	ConcatCRF          int    `toml:"concat_crf"`
	ConcatAudioBitrate string `toml:"concat_audio_bitrate"`
}

// Binaries contains the external tool locations.
type Binaries struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Paths contains directory configuration.
type Paths struct {
	// WorkDir hosts per-run workspaces and destination locks. Empty means the OS temp dir.
	WorkDir string `toml:"work_dir"`
}

// History contains configuration for the run ledger.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File, when set, receives a JSON copy of every log record.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for silencecut.
//
// Configuration sections by subsystem:
//   - Detection: silence threshold, minimum duration, padding
//   - Output: derived output naming
//   - Encoding: re-encode fallback codecs and presets
//   - Binaries: ffmpeg/ffprobe locations
//   - Paths: workspace root
//   - History: SQLite run ledger
//   - Logging: log format, level and optional JSON log file
type Config struct {
	Detection Detection `toml:"detection"`
	Output    Output    `toml:"output"`
	Encoding  Encoding  `toml:"encoding"`
	Binaries  Binaries  `toml:"binaries"`
	Paths     Paths     `toml:"paths"`
	History   History   `toml:"history"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("silencecut.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a trim run writes into.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.WorkDir) != "" {
		if err := os.MkdirAll(c.Paths.WorkDir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", c.Paths.WorkDir, err)
		}
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) != "" {
		dir := filepath.Dir(c.History.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable used for analysis and assembly.
func (c *Config) FFmpegBinary() string {
	if value := strings.TrimSpace(c.Binaries.FFmpeg); value != "" {
		return value
	}
	return defaultFFmpegBinary
}

// FFprobeBinary returns the ffprobe executable used for duration probing.
func (c *Config) FFprobeBinary() string {
	if value := strings.TrimSpace(c.Binaries.FFprobe); value != "" {
		return value
	}
	return defaultFFprobeBinary
}

// WorkRoot returns the directory hosting per-run workspaces.
func (c *Config) WorkRoot() string {
	if value := strings.TrimSpace(c.Paths.WorkDir); value != "" {
		return value
	}
	return os.TempDir()
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultHistoryPath() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "silencecut", "history.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.local/share/silencecut/history.db"
	}
	return filepath.Join(home, ".local", "share", "silencecut", "history.db")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
