package terminal

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/verte-zerg/typy/internal/model"
)

var testTheme = model.Theme{Fg: "#ffffff", Missing: "#808080", Error: "#ff0000", Accent: "#ffff00"}

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(80, 24)
	term := newTerminal(screen, testTheme, model.CursorSteadyBar)
	t.Cleanup(term.Restore)
	return term, screen
}

func TestWriteCharUsesRoleColor(t *testing.T) {
	term, screen := newSimTerminal(t)
	term.MoveCursor(3, 2)
	term.SetColor(model.RoleIncorrect)
	term.WriteChar('x')
	term.SetColor(model.RoleCorrect)
	term.WriteChar('y')
	term.Flush()

	mainc, _, style, _ := screen.GetContent(3, 2)
	if mainc != 'x' {
		t.Fatalf("expected x at 3,2, got %q", mainc)
	}
	if fg, _, _ := style.Decompose(); fg != tcell.GetColor(testTheme.Error) {
		t.Fatalf("expected error color, got %v", fg)
	}
	mainc, _, style, _ = screen.GetContent(4, 2)
	if mainc != 'y' {
		t.Fatalf("expected y at 4,2, got %q", mainc)
	}
	if fg, _, _ := style.Decompose(); fg != tcell.GetColor(testTheme.Fg) {
		t.Fatalf("expected foreground color, got %v", fg)
	}
}

func TestWriteCharAdvancesByWidth(t *testing.T) {
	term, screen := newSimTerminal(t)
	term.MoveCursor(0, 0)
	term.WriteChar('日')
	term.WriteChar('a')
	term.Flush()
	if mainc, _, _, _ := screen.GetContent(2, 0); mainc != 'a' {
		t.Fatalf("expected a after a wide rune, got %q", mainc)
	}
}

func TestPollKeyTranslatesEvents(t *testing.T) {
	term, screen := newSimTerminal(t)
	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); err != nil {
		t.Fatalf("post: %v", err)
	}
	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); err != nil {
		t.Fatalf("post: %v", err)
	}
	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)); err != nil {
		t.Fatalf("post: %v", err)
	}

	want := []model.Key{
		{Kind: model.KeyRune, Rune: 'q'},
		{Kind: model.KeyQuit},
		{Kind: model.KeyOther},
	}
	for i, w := range want {
		got, err := term.PollKey(time.Second)
		if err != nil {
			t.Fatalf("poll %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("poll %d: expected %+v, got %+v", i, w, got)
		}
	}
}

func TestPollKeyTimeout(t *testing.T) {
	term, _ := newSimTerminal(t)
	start := time.Now()
	key, err := term.PollKey(5 * time.Millisecond)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if key.Kind != model.KeyNone {
		t.Fatalf("expected no key, got %+v", key)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("poll blocked past its timeout")
	}
}

func TestRestoreClosesPolling(t *testing.T) {
	term, _ := newSimTerminal(t)
	term.Restore()
	term.Restore()
	if _, err := term.PollKey(time.Second); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestCursorStyleMapping(t *testing.T) {
	if cursorStyle(model.CursorSteadyBar) != tcell.CursorStyleSteadyBar {
		t.Fatalf("unexpected steady bar mapping")
	}
	if cursorStyle(model.CursorStyle(99)) != tcell.CursorStyleDefault {
		t.Fatalf("expected default for unknown style")
	}
}
