package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"silencecut/internal/config"
	"silencecut/internal/testsupport"
)

// stubFFmpeg reports two silences during analysis and otherwise writes a few
// bytes to its last argument, which is always the output path. Every
// invocation is appended to $STUB_LOG. STUB_SILENCE=none suppresses the
// silence events.
const stubFFmpeg = `#!/bin/sh
if [ -n "$STUB_LOG" ]; then
  echo "$*" >> "$STUB_LOG"
fi
case "$*" in
  *-version*)
    echo "ffmpeg version 7.1-stub Copyright (c) 2000-2025"
    exit 0;;
  *-filters*)
    echo " ... silencedetect     A->A       Detect silence."
    exit 0;;
  *silencedetect*)
    if [ "$STUB_SILENCE" != "none" ]; then
      echo "[silencedetect @ 0x5600] silence_start: 10" >&2
      echo "[silencedetect @ 0x5600] silence_end: 20 | silence_duration: 10" >&2
      echo "[silencedetect @ 0x5600] silence_start: 30" >&2
      echo "[silencedetect @ 0x5600] silence_end: 40 | silence_duration: 10" >&2
    fi
    exit 0;;
esac
for last; do :; done
printf 'trimmed-media' > "$last"
`

const stubFFprobe = `#!/bin/sh
case "$*" in
  *json*)
    echo '{"streams":[{"index":0,"codec_type":"video"},{"index":1,"codec_type":"audio"}],"format":{"duration":"60.000000","size":"4096"}}'
    exit 0;;
esac
echo "60.000000"
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	input      string
	stubLog    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SILENCECUT_FFMPEG", "")
	t.Setenv("SILENCECUT_FFPROBE", "")

	binDir := filepath.Join(base, "bin")
	writeExecutable(t, filepath.Join(binDir, "ffmpeg"), stubFFmpeg)
	writeExecutable(t, filepath.Join(binDir, "ffprobe"), stubFFprobe)
	cfg.Binaries.FFmpeg = filepath.Join(binDir, "ffmpeg")
	cfg.Binaries.FFprobe = filepath.Join(binDir, "ffprobe")

	stubLog := filepath.Join(base, "ffmpeg.log")
	t.Setenv("STUB_LOG", stubLog)
	t.Setenv("STUB_SILENCE", "")

	configPath := filepath.Join(homeDir, ".config", "silencecut", "config.toml")
	writeTestConfig(t, configPath, cfg)

	input := filepath.Join(base, "media", "talk.mp4")
	testsupport.WriteFile(t, input, 4096)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		input:      input,
		stubLog:    stubLog,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeExecutable(t *testing.T, path, script string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[binaries]\nffmpeg = %q\nffprobe = %q\n\n[paths]\nwork_dir = %q\n\n[history]\nenabled = true\npath = %q\n",
		cfg.Binaries.FFmpeg,
		cfg.Binaries.FFprobe,
		cfg.Paths.WorkDir,
		cfg.History.Path,
	)
	if cfg.Logging.File != "" {
		content += fmt.Sprintf("\n[logging]\nfile = %q\n", cfg.Logging.File)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func readStubLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("read stub log: %v", err)
	}
	return string(data)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
