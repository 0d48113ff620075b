package plan

import "silencecut/internal/silence"

// Stats summarizes a plan for reporting.
type Stats struct {
	OriginalSeconds float64 `json:"original_seconds"`
	SilenceCount    int     `json:"silence_count"`
	SegmentCount    int     `json:"segment_count"`
	// RemovedSeconds sums the raw silence durations, before padding.
	RemovedSeconds float64 `json:"removed_seconds"`
	// KeptSeconds sums the planned segment durations.
	KeptSeconds    float64 `json:"kept_seconds"`
	RemovedPercent float64 `json:"removed_percent"`
}

// Summarize computes report statistics for a plan.
func Summarize(silences []silence.Interval, segments []Segment, duration float64) Stats {
	stats := Stats{
		OriginalSeconds: duration,
		SilenceCount:    len(silences),
		SegmentCount:    len(segments),
	}
	for _, s := range silences {
		stats.RemovedSeconds += s.Duration()
	}
	for _, seg := range segments {
		stats.KeptSeconds += seg.Duration()
	}
	if duration > 0 {
		stats.RemovedPercent = stats.RemovedSeconds / duration * 100
	}
	return stats
}
