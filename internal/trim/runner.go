package trim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"silencecut/internal/assemble"
	"silencecut/internal/fileutil"
	"silencecut/internal/history"
	"silencecut/internal/logging"
	"silencecut/internal/media/ffprobe"
	"silencecut/internal/plan"
	"silencecut/internal/silence"
	"silencecut/internal/staging"
)

// ErrInputNotFound reports that the input path does not exist.
var ErrInputNotFound = errors.New("input file not found")

// Scanner finds silent intervals in a media file.
type Scanner interface {
	Detect(ctx context.Context, path string, opts silence.Options) ([]silence.Interval, error)
}

// Prober reports the total duration of a media file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Assembler writes the keep segments of input to output.
type Assembler interface {
	Assemble(ctx context.Context, input string, segments []plan.Segment, output string) (assemble.Result, error)
}

// Recorder persists finished runs.
type Recorder interface {
	Record(ctx context.Context, run history.Run) error
}

// FFprobe adapts an ffprobe binary to the Prober interface.
type FFprobe string

// Duration implements Prober.
func (b FFprobe) Duration(ctx context.Context, path string) (float64, error) {
	return ffprobe.Duration(ctx, string(b), path)
}

// Request describes one trim job.
type Request struct {
	Input string
	// Output is derived from Input and Suffix when empty.
	Output            string
	Suffix            string
	ThresholdDB       float64
	MinSilenceSeconds float64
	PaddingSeconds    float64
}

func (r Request) silenceOptions() silence.Options {
	return silence.Options{ThresholdDB: r.ThresholdDB, MinDuration: r.MinSilenceSeconds}
}

// Result summarizes a finished run.
type Result struct {
	RunID    string
	Input    string
	Output   string
	Status   history.Status
	Silences []silence.Interval
	Segments []plan.Segment
	Stats    plan.Stats
	Assembly assemble.Result

	InputBytes  int64
	OutputBytes int64

	StartedAt  time.Time
	FinishedAt time.Time
}

// Elapsed returns the wall-clock duration of the run.
func (r Result) Elapsed() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Dependencies bundles the collaborators a Runner drives.
type Dependencies struct {
	Scanner   Scanner
	Prober    Prober
	Assembler Assembler
	// Recorder is optional.
	Recorder Recorder
	// WorkRoot hosts destination locks and stale workspaces.
	WorkRoot string
}

// Runner executes trim jobs.
type Runner struct {
	deps   Dependencies
	logger *slog.Logger
	now    func() time.Time
}

// NewRunner constructs a Runner.
func NewRunner(deps Dependencies, logger *slog.Logger) *Runner {
	return &Runner{
		deps:   deps,
		logger: logging.NewComponentLogger(logger, "trim"),
		now:    time.Now,
	}
}

// Run trims the silent parts of req.Input into req.Output. When no silence is
// found the result has StatusNoSilence and no output file is written.
func (r *Runner) Run(ctx context.Context, req Request) (result Result, err error) {
	result = r.begin(req)
	ctx = logging.WithRunID(ctx, result.RunID)
	logger := logging.WithContext(ctx, r.logger)

	defer func() {
		result.FinishedAt = r.now()
		if err != nil {
			result.Status = history.StatusFailed
		}
		r.record(ctx, logger, req, result, err)
	}()

	if err := checkInput(req.Input); err != nil {
		return result, err
	}
	if samePath(result.Input, result.Output) {
		return result, fmt.Errorf("output %s would overwrite the input", result.Output)
	}

	staging.CleanStale(ctx, r.deps.WorkRoot, staging.DefaultStaleAge, logger)

	lock, err := staging.LockDestination(r.deps.WorkRoot, result.Output)
	if err != nil {
		return result, err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			logger.Debug("destination lock release failed", logging.Error(releaseErr))
		}
	}()

	logger.Info("trim started",
		logging.String("input", result.Input),
		logging.String("output", result.Output),
		logging.Float64("threshold_db", req.ThresholdDB),
		logging.Float64("min_silence_seconds", req.MinSilenceSeconds),
		logging.Float64("padding_seconds", req.PaddingSeconds),
	)

	if err := r.analyze(ctx, logger, req, &result); err != nil {
		return result, err
	}
	if result.Status == history.StatusNoSilence {
		return result, nil
	}

	if len(result.Segments) == 0 {
		return result, assemble.ErrNoSegments
	}

	assembly, err := r.deps.Assembler.Assemble(ctx, result.Input, result.Segments, result.Output)
	result.Assembly = assembly
	if err != nil {
		return result, err
	}

	result.Status = history.StatusSuccess
	result.InputBytes = fileutil.FileSize(result.Input)
	result.OutputBytes = fileutil.FileSize(result.Output)
	logger.Info("trim complete",
		logging.String("output", result.Output),
		logging.Int("segments", len(result.Segments)),
		logging.Seconds("removed_seconds", result.Stats.RemovedSeconds),
		logging.Int("extract_fallbacks", assembly.ExtractFallbacks),
		logging.Bool("concat_fallback", assembly.ConcatFallback),
	)
	return result, nil
}

// Plan scans, probes and plans req without writing any output.
func (r *Runner) Plan(ctx context.Context, req Request) (Result, error) {
	result := r.begin(req)
	ctx = logging.WithRunID(ctx, result.RunID)
	logger := logging.WithContext(ctx, r.logger)

	if err := checkInput(req.Input); err != nil {
		return result, err
	}
	err := r.analyze(ctx, logger, req, &result)
	result.FinishedAt = r.now()
	return result, err
}

func (r *Runner) begin(req Request) Result {
	output := strings.TrimSpace(req.Output)
	if output == "" {
		output = DefaultOutputPath(req.Input, req.Suffix)
	}
	return Result{
		RunID:     uuid.NewString(),
		Input:     req.Input,
		Output:    output,
		StartedAt: r.now(),
	}
}

// analyze fills in silences, duration, segments and statistics.
func (r *Runner) analyze(ctx context.Context, logger *slog.Logger, req Request, result *Result) error {
	logger.Info("detecting silence",
		logging.String("filter", req.silenceOptions().Filter()),
	)
	silences, err := r.deps.Scanner.Detect(ctx, req.Input, req.silenceOptions())
	if err != nil {
		return fmt.Errorf("detect silence: %w", err)
	}
	result.Silences = silences
	result.Stats.SilenceCount = len(silences)
	if len(silences) == 0 {
		result.Status = history.StatusNoSilence
		logging.WarnWithContext(logger, "no silence detected", "no_silence",
			logging.String(logging.FieldErrorHint, "raise --threshold (e.g. -25) or lower --min-duration"),
			logging.String(logging.FieldImpact, "no output written"),
		)
		return nil
	}
	logger.Info("silence detected", logging.Int("intervals", len(silences)))

	duration, err := r.deps.Prober.Duration(ctx, req.Input)
	if err != nil {
		return fmt.Errorf("probe duration: %w", err)
	}

	result.Segments = plan.Build(silences, duration, req.PaddingSeconds)
	result.Stats = plan.Summarize(silences, result.Segments, duration)
	logger.Info("segments planned",
		logging.Seconds("duration_seconds", duration),
		logging.Int("segments", len(result.Segments)),
		logging.Seconds("removed_seconds", result.Stats.RemovedSeconds),
	)
	return nil
}

func checkInput(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: no input given", ErrInputNotFound)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return fmt.Errorf("inspect input: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input %s is a directory", path)
	}
	return nil
}

func (r *Runner) record(ctx context.Context, logger *slog.Logger, req Request, result Result, runErr error) {
	if r.deps.Recorder == nil {
		return
	}
	run := history.Run{
		ID:                result.RunID,
		Input:             result.Input,
		Status:            result.Status,
		StartedAt:         result.StartedAt,
		FinishedAt:        result.FinishedAt,
		ThresholdDB:       req.ThresholdDB,
		MinSilenceSeconds: req.MinSilenceSeconds,
		PaddingSeconds:    req.PaddingSeconds,
		DurationSeconds:   result.Stats.OriginalSeconds,
		RemovedSeconds:    result.Stats.RemovedSeconds,
		SilenceCount:      result.Stats.SilenceCount,
		SegmentCount:      len(result.Segments),
		InputBytes:        result.InputBytes,
		OutputBytes:       result.OutputBytes,
		ExtractFallbacks:  result.Assembly.ExtractFallbacks,
		ConcatFallback:    result.Assembly.ConcatFallback,
	}
	if result.Status == history.StatusSuccess {
		run.Output = result.Output
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := r.deps.Recorder.Record(context.WithoutCancel(ctx), run); err != nil {
		logging.WarnWithContext(logger, "failed to record run history", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check history.path or run with --no-history"),
			logging.String(logging.FieldImpact, "run missing from history"),
		)
	}
}
