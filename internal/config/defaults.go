package config

const (
	defaultConfigPath         = "~/.config/silencecut/config.toml"
	defaultThresholdDB        = -30.0
	defaultMinSilenceSeconds  = 0.5
	defaultPaddingSeconds     = 0.1
	defaultOutputSuffix       = "_trimmed"
	defaultSegmentContainer   = "ts"
	defaultVideoCodec         = "libx264"
	defaultAudioCodec         = "aac"
	defaultExtractPreset      = "ultrafast"
	defaultConcatPreset       = "medium"
	defaultConcatCRF          = 23
	defaultConcatAudioBitrate = "192k"
	defaultFFmpegBinary       = "ffmpeg"
	defaultFFprobeBinary      = "ffprobe"
	defaultHistoryEnabled     = true
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Detection: Detection{
			ThresholdDB:       defaultThresholdDB,
			MinSilenceSeconds: defaultMinSilenceSeconds,
			PaddingSeconds:    defaultPaddingSeconds,
		},
		Output: Output{
			Suffix: defaultOutputSuffix,
		},
		Encoding: Encoding{
			SegmentContainer:   defaultSegmentContainer,
			VideoCodec:         defaultVideoCodec,
			AudioCodec:         defaultAudioCodec,
			ExtractPreset:      defaultExtractPreset,
			ConcatPreset:       defaultConcatPreset,
			ConcatCRF:          defaultConcatCRF,
			ConcatAudioBitrate: defaultConcatAudioBitrate,
		},
		Binaries: Binaries{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
			Path:    defaultHistoryPath(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
