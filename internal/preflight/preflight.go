package preflight

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"silencecut/internal/config"
)

// ErrMissingDependency reports that ffmpeg or ffprobe cannot be resolved.
var ErrMissingDependency = errors.New("missing dependency")

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// outputDir is checked in addition to the work root when non-empty.
func RunAll(ctx context.Context, cfg *config.Config, outputDir string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range CheckSystemDeps(cfg) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Command}
		if !status.Available {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}

	results = append(results, CheckDirectoryAccess("Work directory", cfg.WorkRoot()))

	if outputDir = strings.TrimSpace(outputDir); outputDir != "" {
		results = append(results, CheckDirectoryAccess("Output directory", outputDir))
	}

	if cfg.History.Enabled {
		results = append(results, CheckDirectoryAccess("History directory", filepath.Dir(cfg.History.Path)))
	}

	if err := ctx.Err(); err != nil {
		results = append(results, Result{Name: "Context", Detail: err.Error()})
	}
	return results
}

// RequireBinaries returns an error wrapping ErrMissingDependency when ffmpeg
// or ffprobe cannot be found. It returns the resolved commands otherwise.
func RequireBinaries(cfg *config.Config) (ffmpeg, ffprobe string, err error) {
	if cfg == nil {
		return "", "", fmt.Errorf("%w: no configuration", ErrMissingDependency)
	}
	var missing []string
	for _, status := range CheckSystemDeps(cfg) {
		if !status.Available {
			missing = append(missing, fmt.Sprintf("%s (%s)", status.Name, status.Detail))
			continue
		}
		switch status.Name {
		case "FFmpeg":
			ffmpeg = status.Command
		case "FFprobe":
			ffprobe = status.Command
		}
	}
	if len(missing) > 0 {
		return "", "", fmt.Errorf("%w: %s; install FFmpeg and make sure it is on PATH", ErrMissingDependency, strings.Join(missing, ", "))
	}
	return ffmpeg, ffprobe, nil
}
