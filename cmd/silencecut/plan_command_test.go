package main

import (
	"encoding/json"
	"os"
	"testing"

	"silencecut/internal/trim"
)

func TestPlanCommandPrintsSegments(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"plan", env.input}, env.configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, out, "1 video, 1 audio streams")
	requireContains(t, out, "9.90s")
	requireContains(t, out, "40.10s")
	requireContains(t, out, "Final duration")

	if _, err := os.Stat(trim.DefaultOutputPath(env.input, "_trimmed")); !os.IsNotExist(err) {
		t.Fatalf("plan must not write output, stat err = %v", err)
	}
}

func TestPlanCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"plan", "--json", "-p", "0", env.input}, env.configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	var payload planJSON
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode plan json: %v\n%s", err, out)
	}
	if len(payload.Silences) != 2 {
		t.Fatalf("expected 2 silences, got %d", len(payload.Silences))
	}
	want := []planSegmentJSON{
		{Start: 0, End: 10, Duration: 10},
		{Start: 20, End: 30, Duration: 10},
		{Start: 40, End: 60, Duration: 20},
	}
	if len(payload.Segments) != len(want) {
		t.Fatalf("segments = %+v", payload.Segments)
	}
	for i := range want {
		if payload.Segments[i] != want[i] {
			t.Fatalf("segment %d = %+v, want %+v", i, payload.Segments[i], want[i])
		}
	}
	if payload.Stats.RemovedSeconds != 20 || payload.Stats.OriginalSeconds != 60 {
		t.Fatalf("unexpected stats %+v", payload.Stats)
	}
}
