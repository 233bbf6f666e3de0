package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestFactoryJSONCarriesComponent(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	l := NewFactory(Options{Level: "debug", Format: "json", Out: buf}).For("tracking")
	l.Infof("report built in %d ms", 3)

	entry := map[string]any{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry["component"] != "tracking" || entry["level"] != "info" || entry["message"] != "report built in 3 ms" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestFactoryLevelFilters(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	l := NewFactory(Options{Level: "warn", Format: "json", Out: buf}).For("wear")
	l.Debugf("hidden")
	l.Debugw("hidden", map[string]any{"k": 1})
	l.Infof("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	l.Warnf("shown")
	l.Errorf("shown too")
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Fatalf("expected 2 entries, got %d", n)
	}
}

func TestFactoryConsoleAndBadLevel(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	l := NewFactory(Options{Level: "loud", Format: "console", Out: buf}).For("cli")
	l.Debugf("dropped at default info level")
	l.Infof("hello")
	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "hello") {
		t.Fatalf("unexpected console output %q", buf.String())
	}
}
