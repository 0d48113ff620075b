package main

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// extractionProgress draws a progress bar for segment extraction. It is a
// no-op unless enabled, so callers can wire it unconditionally.
type extractionProgress struct {
	writer  io.Writer
	enabled bool
	bar     *progressbar.ProgressBar
}

// newExtractionProgress enables the bar only for interactive, non-verbose
// runs; verbose runs log every segment instead.
func newExtractionProgress(w io.Writer, verbose bool) *extractionProgress {
	return &extractionProgress{writer: w, enabled: !verbose && isTerminal(w)}
}

func (p *extractionProgress) Update(done, total int) {
	if !p.enabled || total <= 1 {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.writer),
			progressbar.OptionSetDescription("extracting segments"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Set(done)
}

func (p *extractionProgress) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	p.bar = nil
}
