package assemble

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"silencecut/internal/config"
	"silencecut/internal/plan"
)

func TestManifestLineEscapesQuotes(t *testing.T) {
	got := manifestLine("/tmp/o'brien/segment_0000.ts")
	want := "file '/tmp/o'\\''brien/segment_0000.ts'\n"
	if got != want {
		t.Fatalf("manifestLine = %q, want %q", got, want)
	}
}

func TestWriteManifestUsesAbsolutePathsInOrder(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "concat_list.txt")
	if err := writeManifest(path, []string{"segment_0000.ts", "segment_0001.ts"}); err != nil {
		t.Fatalf("writeManifest: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected manifest %q", data)
	}
	if lines[0] != "file '"+filepath.Join(dir, "segment_0000.ts")+"'" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "segment_0001.ts'") {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}

func TestArgsUseConfiguredEncoding(t *testing.T) {
	enc := config.Default().Encoding
	enc.VideoCodec = "libx265"
	enc.ConcatCRF = 28
	seg := plan.Segment{Start: 2.25, End: 4}

	extract := strings.Join(extractEncodeArgs("in.mkv", seg, "out.ts", enc), " ")
	if extract != "-v error -i in.mkv -ss 2.25 -t 1.75 -c:v libx265 -preset ultrafast -c:a aac -y out.ts" {
		t.Fatalf("unexpected extract args %q", extract)
	}
	concat := strings.Join(concatEncodeArgs("list.txt", "out.mkv", enc), " ")
	if concat != "-v warning -f concat -safe 0 -i list.txt -c:v libx265 -preset medium -crf 28 -c:a aac -b:a 192k -y out.mkv" {
		t.Fatalf("unexpected concat args %q", concat)
	}
	single := strings.Join(singleCopyArgs("in.mkv", seg, "out.mkv", true), " ")
	if single != "-v info -i in.mkv -ss 2.25 -t 1.75 -c copy -avoid_negative_ts make_zero -y out.mkv" {
		t.Fatalf("unexpected single args %q", single)
	}
}
