package statsui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typy/internal/model"
)

type fakeSource struct {
	scores []model.Score
	avg    model.Averages
	err    error
	loads  int
}

func (f *fakeSource) ListScores(context.Context) ([]model.Score, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return f.scores, nil
}

func (f *fakeSource) Averages(context.Context) (model.Averages, error) {
	return f.avg, nil
}

func TestViewShowsAveragesAndScores(t *testing.T) {
	src := &fakeSource{
		scores: []model.Score{
			{Timestamp: time.Date(2024, 5, 2, 9, 30, 0, 0, time.Local), WPM: 72, Raw: 80, Accuracy: 97.5},
			{Timestamp: time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local), WPM: 65, Raw: 70, Accuracy: 95},
		},
		avg: model.Averages{WPM: 68.5, Raw: 75, Accuracy: 96.3, Count: 12},
	}
	m := NewModel(src)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := m.View()
	for _, want := range []string{"Sessions", "12", "68.5", "96.3%", "2024-05-02", "97.50%", "Trend", "quit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}

func TestViewEmptyHistory(t *testing.T) {
	m := NewModel(&fakeSource{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	if out := m.View(); !strings.Contains(out, "No scores found.") {
		t.Fatalf("expected empty notice:\n%s", out)
	}
}

func TestReloadAndError(t *testing.T) {
	src := &fakeSource{}
	m := NewModel(src)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	src.err = errors.New("database is locked")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if src.loads != 2 {
		t.Fatalf("expected reload, got %d loads", src.loads)
	}
	if out := m.View(); !strings.Contains(out, "database is locked") {
		t.Fatalf("expected error in footer:\n%s", out)
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel(&fakeSource{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}
