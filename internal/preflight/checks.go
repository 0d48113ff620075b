package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"silencecut/internal/config"
	"silencecut/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates ffmpeg and ffprobe for the given config. Both the
// trim pipeline and the status command use this list.
func CheckSystemDeps(cfg *config.Config) []deps.Binary {
	ffmpeg := deps.Resolve("FFmpeg", cfg.FFmpegBinary())
	return []deps.Binary{ffmpeg, deps.ResolveFFprobe(ffmpeg, cfg.FFprobeBinary())}
}
