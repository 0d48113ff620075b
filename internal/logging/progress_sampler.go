package logging

// ProgressSampler suppresses repetitive per-segment logs. It emits the first
// and last item of a batch plus every interval-th item in between.
type ProgressSampler struct {
	interval int
}

// NewProgressSampler constructs a sampler. An interval of 1 or less logs
// every item, which is what verbose runs use.
func NewProgressSampler(interval int) *ProgressSampler {
	if interval < 1 {
		interval = 1
	}
	return &ProgressSampler{interval: interval}
}

// ShouldLog reports whether the item at the 1-based position done of total
// should be logged.
func (s *ProgressSampler) ShouldLog(done, total int) bool {
	if s == nil || s.interval <= 1 {
		return true
	}
	if done <= 1 || done >= total {
		return true
	}
	return done%s.interval == 0
}
