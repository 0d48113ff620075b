package plan

import (
	"math"

	"silencecut/internal/silence"
)

// Segment is a contiguous span of the source to retain, in seconds.
type Segment struct {
	Start float64
	End   float64
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Build returns the keep segments covering [0, duration] minus each silence
// widened by padding on both sides. Overlapping padded silences merge, and no
// zero or negative length segment is ever produced. The cursor only moves
// forward, so a silence nested inside an earlier padded window is absorbed.
func Build(silences []silence.Interval, duration, padding float64) []Segment {
	if !(duration > 0) || math.IsInf(duration, 0) {
		return nil
	}
	if !(padding > 0) {
		padding = 0
	}
	if len(silences) == 0 {
		return []Segment{{Start: 0, End: duration}}
	}

	segments := make([]Segment, 0, len(silences)+1)
	cursor := 0.0
	for _, s := range silences {
		paddedStart := math.Min(duration, math.Max(0, s.Start-padding))
		paddedEnd := math.Min(duration, s.End+padding)
		if cursor < paddedStart {
			segments = append(segments, Segment{Start: cursor, End: paddedStart})
		}
		cursor = math.Max(cursor, paddedEnd)
	}
	if cursor < duration {
		segments = append(segments, Segment{Start: cursor, End: duration})
	}
	return segments
}
