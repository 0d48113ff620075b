// Package ffprobe provides a typed wrapper around ffprobe.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//   - Format: container-level metadata (duration, size, bitrate)
//
// Entry points:
//   - Duration: the single authoritative duration used for segment planning
//   - Inspect: executes ffprobe in JSON mode and returns parsed Result
package ffprobe
