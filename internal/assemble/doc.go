// Package assemble cuts the planned keep segments out of the source with
// ffmpeg and joins them into the final output.
//
// A single segment is stream-copied straight to the staged output. Several
// segments are first extracted to numbered fragments in the run workspace,
// then joined with the concat demuxer. Extraction and concatenation each run
// under a Policy: stream copy first, one re-encode attempt if that fails.
// The finished file is moved to the destination only after ffmpeg succeeds.
package assemble
