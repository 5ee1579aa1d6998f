// Package terminal draws the typing screen and reads keys through tcell.
package terminal

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typy/internal/model"
)

// ErrClosed is returned by PollKey once the screen has been finalized.
var ErrClosed = errors.New("terminal closed")

const finiWait = 100 * time.Millisecond

// Terminal is a tcell screen with a pen position and a current color.
type Terminal struct {
	screen tcell.Screen
	styles map[model.Role]tcell.Style
	cursor tcell.CursorStyle
	style  tcell.Style
	penX   int
	penY   int

	events      chan tcell.Event
	pollDone    chan struct{}
	quit        chan struct{}
	restoreOnce sync.Once
}

// Open initializes the terminal screen. The caller must call Restore.
func Open(theme model.Theme, cursor model.CursorStyle) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	return newTerminal(screen, theme, cursor), nil
}

// newTerminal wraps an initialized screen and starts reading its events.
func newTerminal(screen tcell.Screen, theme model.Theme, cursor model.CursorStyle) *Terminal {
	t := &Terminal{
		screen:   screen,
		styles:   themeStyles(theme),
		cursor:   cursorStyle(cursor),
		events:   make(chan tcell.Event, 64),
		pollDone: make(chan struct{}),
		quit:     make(chan struct{}),
	}
	t.style = t.styles[model.RoleDefault]
	screen.SetStyle(tcell.StyleDefault)
	screen.SetCursorStyle(t.cursor)
	go t.pollEvents()
	return t
}

func themeStyles(theme model.Theme) map[model.Role]tcell.Style {
	color := func(hex string) tcell.Style {
		return tcell.StyleDefault.Foreground(tcell.GetColor(hex))
	}
	return map[model.Role]tcell.Style{
		model.RoleDefault:   color(theme.Missing),
		model.RoleCorrect:   color(theme.Fg),
		model.RoleIncorrect: color(theme.Error),
		model.RoleAccent:    color(theme.Accent),
	}
}

func cursorStyle(style model.CursorStyle) tcell.CursorStyle {
	switch style {
	case model.CursorBlinkingBlock:
		return tcell.CursorStyleBlinkingBlock
	case model.CursorSteadyBlock:
		return tcell.CursorStyleSteadyBlock
	case model.CursorBlinkingUnderline:
		return tcell.CursorStyleBlinkingUnderline
	case model.CursorSteadyUnderline:
		return tcell.CursorStyleSteadyUnderline
	case model.CursorBlinkingBar:
		return tcell.CursorStyleBlinkingBar
	case model.CursorSteadyBar:
		return tcell.CursorStyleSteadyBar
	default:
		return tcell.CursorStyleDefault
	}
}

// pollEvents reads events until the screen is finalized.
// PollEvent returns nil after Fini, ending this goroutine.
func (t *Terminal) pollEvents() {
	defer close(t.pollDone)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

// MoveCursor places both the pen and the visible cursor.
func (t *Terminal) MoveCursor(col, row int) {
	t.penX, t.penY = col, row
	t.screen.ShowCursor(col, row)
}

// SetColor selects the style used by following writes.
func (t *Terminal) SetColor(role model.Role) {
	style, ok := t.styles[role]
	if !ok {
		style = t.styles[model.RoleDefault]
	}
	t.style = style
}

// WriteChar draws c at the pen and advances the pen by its display width.
func (t *Terminal) WriteChar(c rune) {
	t.screen.SetContent(t.penX, t.penY, c, nil, t.style)
	w := runewidth.RuneWidth(c)
	if w < 1 {
		w = 1
	}
	t.penX += w
}

// Clear blanks the screen.
func (t *Terminal) Clear() {
	t.screen.Clear()
}

// Flush makes pending changes visible.
func (t *Terminal) Flush() {
	t.screen.Show()
}

// PollKey waits up to timeout for a key. A zero Key with a nil error means
// nothing arrived in time.
func (t *Terminal) PollKey(timeout time.Duration) (model.Key, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case ev := <-t.events:
			key, ok := t.translate(ev)
			if ok {
				return key, nil
			}
		case <-t.pollDone:
			return model.Key{}, ErrClosed
		case <-timer.C:
			return model.Key{}, nil
		}
	}
}

func (t *Terminal) translate(ev tcell.Event) (model.Key, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return model.Key{Kind: model.KeyQuit}, true
		case tcell.KeyRune:
			if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
				return model.Key{Kind: model.KeyOther}, true
			}
			return model.Key{Kind: model.KeyRune, Rune: ev.Rune()}, true
		default:
			return model.Key{Kind: model.KeyOther}, true
		}
	case *tcell.EventResize:
		t.screen.Sync()
		return model.Key{}, false
	default:
		return model.Key{}, false
	}
}

// Suspend hands the terminal back to the shell so another program can draw.
func (t *Terminal) Suspend() error {
	if err := t.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	return nil
}

// Resume takes the terminal back after Suspend.
func (t *Terminal) Resume() error {
	if err := t.screen.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	return nil
}

// Restore resets the cursor shape and finalizes the screen. It is safe to
// call more than once.
func (t *Terminal) Restore() {
	t.restoreOnce.Do(func() {
		t.screen.SetCursorStyle(tcell.CursorStyleDefault)
		close(t.quit)
		t.screen.Fini()
		select {
		case <-t.pollDone:
		case <-time.After(finiWait):
		}
	})
}
