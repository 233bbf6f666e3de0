package components

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestMatchingHints(t *testing.T) {
	t.Parallel()
	cases := []struct {
		input string
		want  []string
	}{
		{"", paletteHints},
		{"st", []string{"start", "stop", "start-at HH:MM", "stop-at HH:MM"}},
		{"start", []string{"start", "start-at HH:MM"}},
		{"goal 1", []string{"goal <hours>"}},
		{"zzz", nil},
	}
	for _, tc := range cases {
		if got := matchingHints(tc.input); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("matchingHints(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"go", "goal ", true},
		{"day", "day-start ", true},
		{"st", "", false},
		{"stop-", "stop-at ", true},
		{"goal 3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := complete(tc.input)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("complete(%q) = %q, %v; want %q, %v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPaletteSubmitAndCancel(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	_ = p.Open()
	p.input.SetValue("  goal 14 ")

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("enter must close the palette")
	}
	if msg, ok := cmd().(PaletteSubmitMsg); !ok || msg.Input != "goal 14" {
		t.Fatalf("unexpected submit %#v", cmd())
	}

	_ = p.Open()
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(PaletteCancelMsg); !ok || p.Visible() {
		t.Fatalf("esc must cancel")
	}
}
