package assemble

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"silencecut/internal/config"
	"silencecut/internal/logging"
	"silencecut/internal/plan"
	"silencecut/internal/staging"
)

func newTestAssembler(t *testing.T, progress ProgressFunc) (*Assembler, string) {
	t.Helper()
	workRoot := filepath.Join(t.TempDir(), "work 'root'")
	return New(Options{
		FFmpeg:   "ffmpeg",
		Encoding: config.Default().Encoding,
		WorkRoot: workRoot,
		Progress: progress,
	}, logging.NewNop()), workRoot
}

func TestAssembleRejectsEmptyPlan(t *testing.T) {
	a, _ := newTestAssembler(t, nil)
	_, err := a.Assemble(context.Background(), "in.mp4", nil, filepath.Join(t.TempDir(), "out.mp4"))
	if !errors.Is(err, ErrNoSegments) {
		t.Fatalf("expected ErrNoSegments, got %v", err)
	}
}

func TestAssembleSingleSegmentStreamCopies(t *testing.T) {
	logPath := setHelperCommand(t, "ok")
	var calls [][2]int
	a, workRoot := newTestAssembler(t, func(done, total int) { calls = append(calls, [2]int{done, total}) })
	output := filepath.Join(t.TempDir(), "talk_trimmed.mp4")

	result, err := a.Assemble(context.Background(), "/media/talk.mp4", []plan.Segment{{Start: 1.5, End: 10}}, output)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if result.Segments != 1 || result.ExtractFallbacks != 0 || result.ConcatFallback {
		t.Fatalf("unexpected result: %+v", result)
	}
	if got := readFile(t, output); got != "seg:1.5" {
		t.Fatalf("unexpected output content %q", got)
	}

	invocations := readInvocations(t, logPath)
	if len(invocations) != 1 {
		t.Fatalf("expected a single ffmpeg call, got %v", invocations)
	}
	for _, want := range []string{"-v warning", "-i /media/talk.mp4", "-ss 1.5", "-t 8.5", "-c copy", "-avoid_negative_ts make_zero"} {
		if !strings.Contains(invocations[0], want) {
			t.Fatalf("expected %q in %q", want, invocations[0])
		}
	}
	if len(calls) != 1 || calls[0] != [2]int{1, 1} {
		t.Fatalf("unexpected progress calls %v", calls)
	}
	assertNoWorkspaces(t, workRoot)
}

func TestAssembleMultipleSegmentsConcatenatesInOrder(t *testing.T) {
	logPath := setHelperCommand(t, "ok")
	var progress []int
	a, workRoot := newTestAssembler(t, func(done, total int) {
		if total != 3 {
			t.Errorf("unexpected total %d", total)
		}
		progress = append(progress, done)
	})
	output := filepath.Join(t.TempDir(), "nested", "it's_trimmed.mp4")

	segments := []plan.Segment{{Start: 0, End: 4.9}, {Start: 7.1, End: 12}, {Start: 15, End: 20}}
	result, err := a.Assemble(context.Background(), "/media/talk.mp4", segments, output)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if result.ExtractFallbacks != 0 || result.ConcatFallback {
		t.Fatalf("unexpected fallbacks: %+v", result)
	}
	if got := readFile(t, output); got != "seg:0|seg:7.1|seg:15" {
		t.Fatalf("unexpected output content %q", got)
	}
	if fmt.Sprint(progress) != "[1 2 3]" {
		t.Fatalf("unexpected progress %v", progress)
	}

	invocations := readInvocations(t, logPath)
	if len(invocations) != 4 {
		t.Fatalf("expected 3 extractions and 1 concat, got %v", invocations)
	}
	if !strings.Contains(invocations[0], "-v error") || !strings.Contains(invocations[0], "segment_0000.ts") {
		t.Fatalf("unexpected extraction call %q", invocations[0])
	}
	if !strings.Contains(invocations[3], "-f concat -safe 0") || !strings.Contains(invocations[3], "-c copy") {
		t.Fatalf("unexpected concat call %q", invocations[3])
	}
	assertNoWorkspaces(t, workRoot)
}

func TestAssembleExtractionFallsBackToReencode(t *testing.T) {
	logPath := setHelperCommand(t, "copyfail")
	a, workRoot := newTestAssembler(t, nil)
	output := filepath.Join(t.TempDir(), "out.mp4")

	segments := []plan.Segment{{Start: 0, End: 2}, {Start: 3, End: 5}}
	result, err := a.Assemble(context.Background(), "/media/talk.mp4", segments, output)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if result.ExtractFallbacks != 2 {
		t.Fatalf("expected 2 extraction fallbacks, got %+v", result)
	}
	if result.ConcatFallback {
		t.Fatal("concat should have succeeded with stream copy")
	}

	invocations := readInvocations(t, logPath)
	if len(invocations) != 5 {
		t.Fatalf("expected copy+encode per segment plus concat, got %v", invocations)
	}
	encode := invocations[1]
	for _, want := range []string{"-c:v libx264", "-preset ultrafast", "-c:a aac"} {
		if !strings.Contains(encode, want) {
			t.Fatalf("expected %q in fallback %q", want, encode)
		}
	}
	assertNoWorkspaces(t, workRoot)
}

func TestAssembleConcatFallsBackToReencode(t *testing.T) {
	logPath := setHelperCommand(t, "concatfail")
	a, _ := newTestAssembler(t, nil)
	output := filepath.Join(t.TempDir(), "out.mp4")

	segments := []plan.Segment{{Start: 0, End: 2}, {Start: 3, End: 5}}
	result, err := a.Assemble(context.Background(), "/media/talk.mp4", segments, output)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if !result.ConcatFallback {
		t.Fatalf("expected concat fallback, got %+v", result)
	}
	invocations := readInvocations(t, logPath)
	last := invocations[len(invocations)-1]
	for _, want := range []string{"-c:v libx264", "-preset medium", "-crf 23", "-b:a 192k"} {
		if !strings.Contains(last, want) {
			t.Fatalf("expected %q in concat fallback %q", want, last)
		}
	}
	if got := readFile(t, output); got != "seg:0|seg:3" {
		t.Fatalf("unexpected output content %q", got)
	}
}

func TestAssembleFatalFailureLeavesDestinationUntouched(t *testing.T) {
	setHelperCommand(t, "allfail")
	a, workRoot := newTestAssembler(t, nil)
	output := filepath.Join(t.TempDir(), "out.mp4")
	if err := os.WriteFile(output, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	segments := []plan.Segment{{Start: 0, End: 2}, {Start: 3, End: 5}}
	_, err := a.Assemble(context.Background(), "/media/talk.mp4", segments, output)
	if err == nil {
		t.Fatal("expected error when every ffmpeg call fails")
	}
	if !strings.Contains(err.Error(), "extract segment 1/2") || !strings.Contains(err.Error(), "Conversion failed!") {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := readFile(t, output); got != "previous" {
		t.Fatalf("destination was modified: %q", got)
	}
	assertNoWorkspaces(t, workRoot)
}

func TestAssembleSingleSegmentFailureHasNoFallback(t *testing.T) {
	logPath := setHelperCommand(t, "allfail")
	a, _ := newTestAssembler(t, nil)
	output := filepath.Join(t.TempDir(), "out.mp4")

	_, err := a.Assemble(context.Background(), "/media/talk.mp4", []plan.Segment{{Start: 0, End: 2}}, output)
	if err == nil {
		t.Fatal("expected error")
	}
	if n := len(readInvocations(t, logPath)); n != 1 {
		t.Fatalf("expected one attempt, got %d", n)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Fatal("expected no output file")
	}
}

func TestAssembleCancelled(t *testing.T) {
	setHelperCommand(t, "ok")
	a, workRoot := newTestAssembler(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	segments := []plan.Segment{{Start: 0, End: 2}, {Start: 3, End: 5}}
	_, err := a.Assemble(ctx, "/media/talk.mp4", segments, filepath.Join(t.TempDir(), "out.mp4"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	assertNoWorkspaces(t, workRoot)
}

func assertNoWorkspaces(t *testing.T, root string) {
	t.Helper()
	dirs, err := staging.ListWorkspaces(root)
	if err != nil {
		t.Fatalf("ListWorkspaces: %v", err)
	}
	if len(dirs) != 0 {
		t.Fatalf("expected workspace removed, found %+v", dirs)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func readInvocations(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read invocation log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func setHelperCommand(t *testing.T, mode string) string {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "invocations.log")
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		helperArgs := append([]string{"-test.run=TestHelperProcess", "--"}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], helperArgs...)
		cmd.Env = append(os.Environ(),
			"GO_WANT_HELPER_PROCESS=1",
			fmt.Sprintf("ASSEMBLE_HELPER_MODE=%s", mode),
			fmt.Sprintf("ASSEMBLE_HELPER_LOG=%s", logPath),
		)
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
	return logPath
}

// TestHelperProcess stands in for ffmpeg. Extractions write "seg:<start>" to
// the output; concatenation joins the manifest's fragments with "|".
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
	joined := strings.Join(args, " ")
	if f, err := os.OpenFile(os.Getenv("ASSEMBLE_HELPER_LOG"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
		fmt.Fprintln(f, joined)
		f.Close()
	}

	isConcat := strings.Contains(joined, "-f concat")
	isCopy := strings.Contains(joined, "-c copy")
	fail := func() {
		fmt.Fprintln(os.Stderr, "Error while processing\nConversion failed!")
		os.Exit(1)
	}
	switch os.Getenv("ASSEMBLE_HELPER_MODE") {
	case "allfail":
		fail()
	case "copyfail":
		if isCopy && !isConcat {
			fail()
		}
	case "concatfail":
		if isCopy && isConcat {
			fail()
		}
	}

	output := args[len(args)-1]
	var content string
	if isConcat {
		parts, err := readManifest(argValue(args, "-i"))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		content = strings.Join(parts, "|")
	} else {
		content = "seg:" + argValue(args, "-ss")
	}
	if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func argValue(args []string, flag string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func readManifest(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var parts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimPrefix(line, "file '")
		line = strings.TrimSuffix(line, "'")
		data, err := os.ReadFile(strings.ReplaceAll(line, `'\''`, "'"))
		if err != nil {
			return nil, err
		}
		parts = append(parts, string(data))
	}
	return parts, scanner.Err()
}
