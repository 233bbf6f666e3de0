package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--data-dir", dataDir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSessionLifecycleAndExport(t *testing.T) {
	dataDir := t.TempDir()

	out, err := run(t, dataDir, "prefs", "set-goal", "12")
	if err != nil {
		t.Fatalf("set-goal: %v", err)
	}
	if !strings.Contains(out, "goal set to 12h") {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = run(t, dataDir, "prefs", "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "goal_hours: 12\n") || !strings.Contains(out, "day_start_at: 05:00 (default)") {
		t.Fatalf("unexpected prefs %q", out)
	}

	if _, err := run(t, dataDir, "session", "start"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := run(t, dataDir, "session", "start"); err == nil {
		t.Fatalf("second start must fail while a session is open")
	}

	out, err = run(t, dataDir, "session", "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.HasPrefix(out, "wearing since ") {
		t.Fatalf("unexpected status %q", out)
	}

	if _, err := run(t, dataDir, "session", "stop"); err != nil {
		t.Fatalf("stop: %v", err)
	}
	out, err = run(t, dataDir, "session", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Contains(out, "open") || strings.Count(out, "\n") != 1 {
		t.Fatalf("expected one closed session, got %q", out)
	}

	notes := filepath.Join(t.TempDir(), "notes")
	out, err = run(t, dataDir, "export", "--dir", notes)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(out, "exported ") {
		t.Fatalf("unexpected export output %q", out)
	}
	entries, err := os.ReadDir(notes)
	if err != nil {
		t.Fatalf("read notes: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("expected at least one day note")
	}
}

func TestRejectsInvalidInput(t *testing.T) {
	dataDir := t.TempDir()

	if _, err := run(t, dataDir, "session", "start-at", "25:00"); err == nil {
		t.Fatalf("expected invalid time of day")
	}
	if _, err := run(t, dataDir, "session", "stop"); err == nil {
		t.Fatalf("expected stop without a session to fail")
	}
	if _, err := run(t, dataDir, "prefs", "set-goal", "many"); err == nil {
		t.Fatalf("expected a non numeric goal to fail")
	}
	if _, err := run(t, dataDir, "prefs", "reset"); err == nil {
		t.Fatalf("reset must require --yes")
	}

	out, err := run(t, dataDir, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if out != "no history\n" {
		t.Fatalf("unexpected history %q", out)
	}
}
