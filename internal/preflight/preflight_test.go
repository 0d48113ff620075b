package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"silencecut/internal/config"
	"silencecut/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil, ""); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_AllPassing(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries(), testsupport.WithHistoryDisabled())

	results := RunAll(context.Background(), cfg, t.TempDir())
	// ffmpeg, ffprobe, work dir, output dir
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d: %+v", len(results), results)
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
}

func TestRunAll_ReportsMissingBinaries(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	cfg := config.Default()
	cfg.Paths.WorkDir = t.TempDir()
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")

	results := RunAll(context.Background(), &cfg, "")
	failed := map[string]bool{}
	for _, r := range results {
		if !r.Passed {
			failed[r.Name] = true
		}
	}
	if !failed["FFmpeg"] || !failed["FFprobe"] {
		t.Fatalf("expected ffmpeg and ffprobe failures, got %+v", results)
	}
	if failed["Work directory"] || failed["History directory"] {
		t.Fatalf("unexpected directory failures: %+v", results)
	}
}

func TestRequireBinaries(t *testing.T) {
	binDir := stubBinaries(t, "ffmpeg", "ffprobe")
	t.Setenv("PATH", binDir)
	cfg := config.Default()

	ffmpeg, ffprobe, err := RequireBinaries(&cfg)
	if err != nil {
		t.Fatalf("RequireBinaries returned error: %v", err)
	}
	if ffmpeg != filepath.Join(binDir, "ffmpeg") || ffprobe != filepath.Join(binDir, "ffprobe") {
		t.Fatalf("unexpected resolved binaries: %q %q", ffmpeg, ffprobe)
	}
}

func TestRequireBinariesMissingFFprobe(t *testing.T) {
	binDir := stubBinaries(t, "ffmpeg")
	t.Setenv("PATH", binDir)
	cfg := config.Default()

	_, _, err := RequireBinaries(&cfg)
	if !errors.Is(err, ErrMissingDependency) {
		t.Fatalf("expected ErrMissingDependency, got %v", err)
	}
	if !strings.Contains(err.Error(), "FFprobe") {
		t.Fatalf("expected error to name ffprobe, got %v", err)
	}
}

func TestProbeFFmpeg(t *testing.T) {
	setHelperCommand(t, "full")
	probe := ProbeFFmpeg(context.Background(), "ffmpeg")
	if !probe.Available || probe.Version != "7.1" || !probe.SilenceDetect {
		t.Fatalf("unexpected probe: %+v", probe)
	}
	if !strings.Contains(probe.Detail(), "silencedetect available") {
		t.Fatalf("unexpected detail: %s", probe.Detail())
	}
}

func TestProbeFFmpegWithoutFilter(t *testing.T) {
	setHelperCommand(t, "nofilter")
	probe := ProbeFFmpeg(context.Background(), "")
	if !probe.Available || probe.SilenceDetect {
		t.Fatalf("unexpected probe: %+v", probe)
	}
	if !strings.Contains(probe.Detail(), "missing") {
		t.Fatalf("unexpected detail: %s", probe.Detail())
	}
}

func TestProbeFFmpegNotRunnable(t *testing.T) {
	setHelperCommand(t, "fail")
	probe := ProbeFFmpeg(context.Background(), "ffmpeg")
	if probe.Available {
		t.Fatalf("expected unavailable probe, got %+v", probe)
	}
	if probe.Detail() != "ffmpeg not runnable" {
		t.Fatalf("unexpected detail: %s", probe.Detail())
	}
}

func stubBinaries(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	return dir
}

func setHelperCommand(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		helperArgs := append([]string{"-test.run=TestHelperProcess", "--"}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], helperArgs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("FFMPEG_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	listing := "Filters:\n ... volumedetect      A->N       Detect audio volume.\n"

	switch os.Getenv("FFMPEG_HELPER_MODE") {
	case "full":
		listing += " ... silencedetect     A->A       Detect silence.\n"
	case "nofilter":
	case "fail":
		fmt.Fprintln(os.Stderr, "exec format error")
		os.Exit(1)
	}
	if strings.Join(args, " ") == "-hide_banner -version" {
		fmt.Println("ffmpeg version 7.1 Copyright (c) 2000-2024 the FFmpeg developers")
	} else {
		fmt.Print(listing)
	}
	os.Exit(0)
}
