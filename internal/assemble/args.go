package assemble

import (
	"strconv"

	"silencecut/internal/config"
	"silencecut/internal/plan"
)

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func verbosity(verbose bool) string {
	if verbose {
		return "info"
	}
	return "warning"
}

func cutArgs(level, input string, seg plan.Segment) []string {
	return []string{
		"-v", level,
		"-i", input,
		"-ss", formatSeconds(seg.Start),
		"-t", formatSeconds(seg.Duration()),
	}
}

// singleCopyArgs copies the only keep segment straight to output.
func singleCopyArgs(input string, seg plan.Segment, output string, verbose bool) []string {
	args := cutArgs(verbosity(verbose), input, seg)
	return append(args,
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
		"-y", output,
	)
}

func extractCopyArgs(input string, seg plan.Segment, output string) []string {
	args := cutArgs("error", input, seg)
	return append(args,
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
		"-y", output,
	)
}

func extractEncodeArgs(input string, seg plan.Segment, output string, enc config.Encoding) []string {
	args := cutArgs("error", input, seg)
	return append(args,
		"-c:v", enc.VideoCodec,
		"-preset", enc.ExtractPreset,
		"-c:a", enc.AudioCodec,
		"-y", output,
	)
}

func concatInputArgs(level, manifest string) []string {
	return []string{
		"-v", level,
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
	}
}

func concatCopyArgs(manifest, output string, verbose bool) []string {
	args := concatInputArgs(verbosity(verbose), manifest)
	return append(args,
		"-c", "copy",
		"-y", output,
	)
}

func concatEncodeArgs(manifest, output string, enc config.Encoding) []string {
	args := concatInputArgs("warning", manifest)
	return append(args,
		"-c:v", enc.VideoCodec,
		"-preset", enc.ConcatPreset,
		"-crf", strconv.Itoa(enc.ConcatCRF),
		"-c:a", enc.AudioCodec,
		"-b:a", enc.ConcatAudioBitrate,
		"-y", output,
	)
}
