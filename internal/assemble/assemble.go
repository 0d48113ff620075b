package assemble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"silencecut/internal/config"
	"silencecut/internal/fileutil"
	"silencecut/internal/logging"
	"silencecut/internal/plan"
	"silencecut/internal/staging"
)

// ErrNoSegments reports that the plan left nothing to keep.
var ErrNoSegments = errors.New("no segments to keep; output would be empty")

var commandContext = exec.CommandContext

const (
	segmentLogInterval = 10
	manifestName       = "concat_list.txt"
	stagedOutputName   = "output"
)

// ProgressFunc receives the number of extracted fragments and the total.
type ProgressFunc func(done, total int)

// Options configures an Assembler.
type Options struct {
	FFmpeg   string
	Encoding config.Encoding
	// WorkRoot hosts the per-run workspace. Empty means the OS temp dir.
	WorkRoot string
	Verbose  bool
	Progress ProgressFunc
}

// Assembler extracts keep segments and joins them into one file.
type Assembler struct {
	opts   Options
	logger *slog.Logger
}

// Result describes how the output was produced.
type Result struct {
	Output           string
	Segments         int
	ExtractFallbacks int
	ConcatFallback   bool
}

// New constructs an Assembler.
func New(opts Options, logger *slog.Logger) *Assembler {
	if strings.TrimSpace(opts.FFmpeg) == "" {
		opts.FFmpeg = "ffmpeg"
	}
	if opts.Encoding.SegmentContainer == "" {
		opts.Encoding.SegmentContainer = "ts"
	}
	return &Assembler{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "assemble"),
	}
}

// Assemble writes the segments of input, in order, to output. All ffmpeg
// output is staged in a private workspace that is removed on return; output
// is only touched once the staged file is complete.
func (a *Assembler) Assemble(ctx context.Context, input string, segments []plan.Segment, output string) (Result, error) {
	result := Result{Output: output, Segments: len(segments)}
	if len(segments) == 0 {
		return result, ErrNoSegments
	}
	logger := logging.WithContext(ctx, a.logger)

	ws, err := staging.NewWorkspace(a.opts.WorkRoot)
	if err != nil {
		return result, err
	}
	defer func() {
		if err := ws.Close(); err != nil {
			logging.WarnWithContext(logger, "workspace cleanup failed", "workspace_cleanup_failed",
				logging.String("path", ws.Dir),
				logging.Error(err),
				logging.String(logging.FieldImpact, "temporary fragments left on disk"),
			)
		}
	}()
	logger.Debug("workspace created", logging.String("path", ws.Dir))

	staged := ws.Path(stagedOutputName + filepath.Ext(output))

	if len(segments) == 1 {
		seg := segments[0]
		logger.Info("extracting single segment",
			logging.Seconds("start", seg.Start),
			logging.Seconds("end", seg.End),
		)
		if err := a.run(ctx, logger, singleCopyArgs(input, seg, staged, a.opts.Verbose)); err != nil {
			return result, fmt.Errorf("extract segment: %w", err)
		}
		a.report(1, 1)
	} else {
		fallbacks, err := a.extractAll(ctx, logger, ws, input, segments)
		result.ExtractFallbacks = fallbacks
		if err != nil {
			return result, err
		}
		usedFallback, err := a.concat(ctx, logger, ws, segments, staged)
		result.ConcatFallback = usedFallback
		if err != nil {
			return result, err
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if err := publish(staged, output); err != nil {
		return result, err
	}
	logger.Debug("output published", logging.String("path", output))
	return result, nil
}

func (a *Assembler) extractAll(ctx context.Context, logger *slog.Logger, ws *staging.Workspace, input string, segments []plan.Segment) (int, error) {
	total := len(segments)
	logger.Info("extracting segments", logging.Int("count", total))

	interval := segmentLogInterval
	if a.opts.Verbose {
		interval = 1
	}
	sampler := logging.NewProgressSampler(interval)

	fallbacks := 0
	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			return fallbacks, err
		}
		fragment := ws.Path(fragmentName(i, a.opts.Encoding.SegmentContainer))
		if sampler.ShouldLog(i+1, total) {
			logger.Info("extracting segment",
				logging.Int("segment", i+1),
				logging.Int("total", total),
				logging.Seconds("start", seg.Start),
				logging.Seconds("end", seg.End),
			)
		}

		policy := Policy{
			Primary: func(ctx context.Context) error {
				return a.run(ctx, logger, extractCopyArgs(input, seg, fragment))
			},
			Fallback: func(ctx context.Context) error {
				return a.run(ctx, logger, extractEncodeArgs(input, seg, fragment, a.opts.Encoding))
			},
			OnFallback: func(err error) {
				logging.WarnWithContext(logger, "segment stream copy failed; retrying with re-encode",
					"segment_copy_failed",
					logging.Int("segment", i+1),
					logging.Error(err),
					logging.String(logging.FieldImpact, "slower extraction for this segment"),
				)
			},
		}
		attempt, err := policy.Run(ctx)
		if err != nil {
			return fallbacks, fmt.Errorf("extract segment %d/%d: %w", i+1, total, err)
		}
		if attempt == AttemptFallback {
			fallbacks++
		}
		a.report(i+1, total)
	}
	return fallbacks, nil
}

func (a *Assembler) concat(ctx context.Context, logger *slog.Logger, ws *staging.Workspace, segments []plan.Segment, staged string) (bool, error) {
	files := make([]string, len(segments))
	for i := range segments {
		files[i] = ws.Path(fragmentName(i, a.opts.Encoding.SegmentContainer))
	}
	manifest := ws.Path(manifestName)
	if err := writeManifest(manifest, files); err != nil {
		return false, err
	}

	logger.Info("concatenating segments", logging.Int("count", len(files)))
	policy := Policy{
		Primary: func(ctx context.Context) error {
			return a.run(ctx, logger, concatCopyArgs(manifest, staged, a.opts.Verbose))
		},
		Fallback: func(ctx context.Context) error {
			return a.run(ctx, logger, concatEncodeArgs(manifest, staged, a.opts.Encoding))
		},
		OnFallback: func(err error) {
			logging.WarnWithContext(logger, "concat with stream copy failed; retrying with re-encode",
				"concat_copy_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "output is re-encoded"),
			)
		},
	}
	attempt, err := policy.Run(ctx)
	if err != nil {
		return false, fmt.Errorf("concatenate segments: %w", err)
	}
	return attempt == AttemptFallback, nil
}

func (a *Assembler) run(ctx context.Context, logger *slog.Logger, args []string) error {
	logger.Debug("running ffmpeg", logging.String("command", a.opts.FFmpeg+" "+strings.Join(args, " ")))
	cmd := commandContext(ctx, a.opts.FFmpeg, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if text := strings.TrimSpace(string(output)); text != "" && a.opts.Verbose {
		logger.Debug("ffmpeg output", logging.String("output", text))
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("ffmpeg: %w: %s", err, lastLine(string(output)))
	}
	return nil
}

func (a *Assembler) report(done, total int) {
	if a.opts.Progress != nil {
		a.opts.Progress(done, total)
	}
}

func fragmentName(index int, container string) string {
	return fmt.Sprintf("segment_%04d.%s", index, container)
}

func publish(staged, output string) error {
	if _, err := os.Stat(staged); err != nil {
		return fmt.Errorf("staged output missing: %w", err)
	}
	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure output directory: %w", err)
		}
	}
	if err := fileutil.MoveFile(staged, output); err != nil {
		return fmt.Errorf("publish output: %w", err)
	}
	return nil
}

func lastLine(output string) string {
	output = strings.TrimSpace(output)
	if idx := strings.LastIndexByte(output, '\n'); idx >= 0 {
		return strings.TrimSpace(output[idx+1:])
	}
	return output
}
