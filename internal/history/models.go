package history

import "time"

// Status is the terminal state of a run.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusNoSilence Status = "no_silence"
	StatusFailed    Status = "failed"
)

// Run is one recorded trim invocation.
type Run struct {
	ID     string
	Input  string
	Output string
	Status Status

	StartedAt  time.Time
	FinishedAt time.Time

	ThresholdDB       float64
	MinSilenceSeconds float64
	PaddingSeconds    float64

	DurationSeconds float64
	RemovedSeconds  float64
	SilenceCount    int
	SegmentCount    int

	InputBytes  int64
	OutputBytes int64

	ExtractFallbacks int
	ConcatFallback   bool

	Error string
}

// Elapsed returns the wall-clock time the run took.
func (r Run) Elapsed() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
