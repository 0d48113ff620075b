package main

import (
	"testing"
)

func TestHistoryCommandClear(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{env.input}, env.configPath); err != nil {
		t.Fatalf("trim: %v", err)
	}

	out, _, err := runCLI(t, []string{"history", "--clear"}, env.configPath)
	if err != nil {
		t.Fatalf("history --clear: %v", err)
	}
	requireContains(t, out, "Removed 1 run(s)")

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}

func TestHistoryCommandWithoutDatabase(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history", "-n", "5"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}
