package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typy/internal/model"
)

var (
	testTheme = model.Theme{Fg: "#ffffff", Missing: "#808080", Error: "#ff0000", Accent: "#ffff00"}
	testGraph = model.GraphColors{Data: "#00ffff", Title: "#ffffff", Axis: "#808080"}
)

func TestSummaryViewShowsMetrics(t *testing.T) {
	m := NewSummaryModel(model.Metrics{
		LettersPerSecond: []int{4, 6, 5},
		TotalLetters:     15,
		Incorrect:        1,
		WPM:              40,
		RawWPM:           60,
		Accuracy:         93.333,
	}, testTheme, testGraph)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := m.View()
	for _, want := range []string{"WPM", "RAW", "ACCURACY", "40.00", "60.00", "93.33%", "letters per second", "3s", "close"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
	if lines := strings.Split(out, "\n"); len(lines) != 30 {
		t.Fatalf("expected view to fill 30 lines, got %d", len(lines))
	}
}

func TestSummaryViewWithoutSeconds(t *testing.T) {
	m := NewSummaryModel(model.Metrics{}, testTheme, testGraph)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if out := m.View(); !strings.Contains(out, "no full second recorded") {
		t.Fatalf("expected empty chart notice:\n%s", out)
	}
}

func TestSummaryClosesOnKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		m := NewSummaryModel(model.Metrics{}, testTheme, testGraph)
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg for %q", msg.String())
		}
	}
	m := NewSummaryModel(model.Metrics{}, testTheme, testGraph)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}); cmd != nil {
		t.Fatalf("expected other keys to be ignored")
	}
}

func TestDisplayRunsUntilClosed(t *testing.T) {
	var out bytes.Buffer
	d := NewDisplay(tea.WithInput(strings.NewReader("q")), tea.WithOutput(&out))
	if err := d.ShowSummary(context.Background(), model.Metrics{WPM: 10}, testTheme, testGraph); err != nil {
		t.Fatalf("show summary: %v", err)
	}
}
