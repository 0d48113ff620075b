package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const ffprobeName = "ffprobe"

// ResolveFFprobe picks the ffprobe that pairs with an already resolved
// ffmpeg. An explicitly configured command wins; otherwise an ffprobe in the
// same directory as ffmpeg is used so custom builds probe with their own
// tools, and PATH is the last resort.
func ResolveFFprobe(ffmpeg Binary, command string) Binary {
	const name = "FFprobe"
	if configured := strings.TrimSpace(command); configured != "" && configured != ffprobeName {
		return Resolve(name, configured)
	}
	if ffmpeg.Available {
		sibling := filepath.Join(filepath.Dir(ffmpeg.Command), executable(ffprobeName))
		if info, err := os.Stat(sibling); err == nil && isExecutable(info) {
			return Binary{Name: name, Command: sibling, Available: true}
		}
	}
	return Resolve(name, ffprobeName)
}

func executable(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	return runtime.GOOS == "windows" || info.Mode().Perm()&0o111 != 0
}
