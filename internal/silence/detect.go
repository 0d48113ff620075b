package silence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"silencecut/internal/logging"
)

// ErrScannerUnavailable reports that ffmpeg could not be started at all.
var ErrScannerUnavailable = errors.New("silence scanner unavailable")

var commandContext = exec.CommandContext

// Options controls silencedetect sensitivity.
type Options struct {
	// ThresholdDB is the loudness below which audio counts as silent, in dB
	// relative to full scale (negative).
	ThresholdDB float64
	// MinDuration is the shortest silence, in seconds, that is reported.
	MinDuration float64
}

// Validate rejects options ffmpeg would refuse or misinterpret.
func (o Options) Validate() error {
	if math.IsNaN(o.ThresholdDB) || o.ThresholdDB > 0 || o.ThresholdDB < -120 {
		return fmt.Errorf("threshold %v dB must be between -120 and 0", o.ThresholdDB)
	}
	if math.IsNaN(o.MinDuration) || math.IsInf(o.MinDuration, 0) || o.MinDuration <= 0 {
		return fmt.Errorf("minimum silence duration %v must be positive", o.MinDuration)
	}
	return nil
}

// Filter renders the silencedetect filter expression.
func (o Options) Filter() string {
	return fmt.Sprintf("silencedetect=n=%sdB:d=%s",
		strconv.FormatFloat(o.ThresholdDB, 'f', -1, 64),
		strconv.FormatFloat(o.MinDuration, 'f', -1, 64))
}

// Detector runs ffmpeg's silencedetect filter over a media file.
type Detector struct {
	FFmpeg string
	Logger *slog.Logger
}

// NewDetector builds a detector for the given ffmpeg binary.
func NewDetector(ffmpegBinary string, logger *slog.Logger) *Detector {
	return &Detector{
		FFmpeg: ffmpegBinary,
		Logger: logging.NewComponentLogger(logger, "silence"),
	}
}

// Args returns the ffmpeg argument list for analysing path.
func (o Options) Args(path string) []string {
	return []string{
		"-hide_banner",
		"-nostats",
		"-i", path,
		"-vn", "-sn", "-dn",
		"-af", o.Filter(),
		"-f", "null",
		"-",
	}
}

// Detect analyses path and returns the silent intervals in stream order. A
// non-zero ffmpeg exit is logged and the intervals parsed so far are still
// returned; only a failure to launch ffmpeg is fatal.
func (d *Detector) Detect(ctx context.Context, path string, opts Options) ([]Interval, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := logging.WithContext(ctx, d.Logger)
	binary := strings.TrimSpace(d.FFmpeg)
	if binary == "" {
		binary = "ffmpeg"
	}

	args := opts.Args(path)
	logger.Debug("running silence analysis",
		logging.String("command", binary+" "+strings.Join(args, " ")),
	)

	cmd := commandContext(ctx, binary, args...) //nolint:gosec
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScannerUnavailable, err)
	}
	if err := cmd.Start(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: start %s: %v", ErrScannerUnavailable, binary, err)
	}

	tail := newLineTail(5)
	intervals, scanErr := scan(stderr, tail.add)
	waitErr := cmd.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if scanErr != nil {
		return nil, scanErr
	}
	if waitErr != nil {
		logging.WarnWithContext(logger, "silence analysis exited with an error",
			"silence_scan_exit",
			logging.Error(waitErr),
			logging.String("stderr_tail", tail.String()),
			logging.Int("intervals", len(intervals)),
			logging.String(logging.FieldImpact, "intervals after the failure point may be missing"),
		)
	}

	logger.Debug("silence analysis complete", logging.Int("intervals", len(intervals)))
	return intervals, nil
}

// lineTail keeps the last few non-empty lines of a stream for diagnostics.
type lineTail struct {
	limit int
	lines []string
}

func newLineTail(limit int) *lineTail {
	return &lineTail{limit: limit}
}

func (t *lineTail) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if len(t.lines) == t.limit {
		t.lines = append(t.lines[:0], t.lines[1:]...)
	}
	t.lines = append(t.lines, line)
}

func (t *lineTail) String() string {
	return strings.Join(t.lines, " | ")
}
