package preflight

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

// FFmpegProbe reports what the installed ffmpeg can do.
type FFmpegProbe struct {
	Binary        string
	Available     bool
	Version       string
	SilenceDetect bool
}

// ProbeFFmpeg runs ffmpeg briefly to read its version banner and confirm the
// silencedetect filter is compiled in.
func ProbeFFmpeg(ctx context.Context, binary string) FFmpegProbe {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	probe := FFmpegProbe{Binary: binary}

	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	output, err := commandContext(probeCtx, binary, "-hide_banner", "-version").Output()
	if err != nil {
		return probe
	}
	probe.Available = true
	probe.Version = parseVersion(output)

	filters, err := commandContext(probeCtx, binary, "-hide_banner", "-filters").Output()
	if err != nil {
		return probe
	}
	probe.SilenceDetect = hasFilter(filters, "silencedetect")
	return probe
}

func parseVersion(output []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	if !scanner.Scan() {
		return "unknown"
	}
	fields := strings.Fields(scanner.Text())
	// "ffmpeg version 7.1 Copyright ..."
	if len(fields) >= 3 && fields[1] == "version" {
		return fields[2]
	}
	return "unknown"
}

func hasFilter(listing []byte, name string) bool {
	scanner := bufio.NewScanner(bytes.NewReader(listing))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[1] == name {
			return true
		}
	}
	return false
}

// Detail renders a display-friendly summary for status UIs.
func (p FFmpegProbe) Detail() string {
	if !p.Available {
		return fmt.Sprintf("%s not runnable", p.Binary)
	}
	if !p.SilenceDetect {
		return fmt.Sprintf("ffmpeg %s (silencedetect filter missing)", p.Version)
	}
	return fmt.Sprintf("ffmpeg %s (silencedetect available)", p.Version)
}
