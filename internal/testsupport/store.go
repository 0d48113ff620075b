package testsupport

import (
	"context"
	"testing"
	"time"

	"silencecut/internal/config"
	"silencecut/internal/history"
)

// MustOpenHistory opens the history store configured in cfg and registers
// cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(context.Background(), cfg.History.Path)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// RecordRun stores a successful run for input started at the given time.
func RecordRun(t testing.TB, store *history.Store, id, input string, started time.Time) history.Run {
	t.Helper()

	run := history.Run{
		ID:                id,
		Input:             input,
		Output:            input + ".trimmed",
		Status:            history.StatusSuccess,
		StartedAt:         started,
		FinishedAt:        started.Add(3 * time.Second),
		ThresholdDB:       -30,
		MinSilenceSeconds: 0.5,
		PaddingSeconds:    0.1,
		DurationSeconds:   120,
		RemovedSeconds:    12.5,
		SilenceCount:      4,
		SegmentCount:      5,
	}
	if err := store.Record(context.Background(), run); err != nil {
		t.Fatalf("store.Record: %v", err)
	}
	return run
}
