// Package model defines shared data structures.
package model

import "time"

// Mode selects a text transformation applied before a session starts.
type Mode string

const (
	ModeNormal      Mode = "normal"
	ModeUppercase   Mode = "uppercase"
	ModePunctuation Mode = "punctuation"
)

// AllModes lists every known mode name.
var AllModes = []Mode{ModeNormal, ModeUppercase, ModePunctuation}

// ModeSettings holds per-mode probabilities and the modes used when none are requested.
type ModeSettings struct {
	DefaultModes      []Mode
	UppercaseChance   float64
	PunctuationChance float64
}

// Theme holds #rrggbb colors for the typing screen.
type Theme struct {
	Fg      string
	Missing string
	Error   string
	Accent  string
}

// GraphColors holds #rrggbb colors for the letters-per-second chart.
type GraphColors struct {
	Data  string
	Title string
	Axis  string
}

// CursorStyle is the terminal cursor shape used during a session.
type CursorStyle int

const (
	CursorDefault CursorStyle = iota
	CursorBlinkingBlock
	CursorSteadyBlock
	CursorBlinkingUnderline
	CursorSteadyUnderline
	CursorBlinkingBar
	CursorSteadyBar
)

// Config defines resolved session settings.
type Config struct {
	Lang       string
	Duration   int
	Rows       int
	LineLength int
	Modes      []Mode
	Settings   ModeSettings
	Theme      Theme
	Graph      GraphColors
	Cursor     CursorStyle
}

// Role is the color role of a drawn character.
type Role int

const (
	RoleDefault Role = iota
	RoleCorrect
	RoleIncorrect
	RoleAccent
)

// KeyKind classifies a polled key.
type KeyKind int

const (
	KeyNone KeyKind = iota
	KeyRune
	KeyQuit
	KeyOther
)

// Key is a single keystroke read from the terminal.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Metrics is a snapshot of session statistics.
type Metrics struct {
	LettersPerSecond []int
	TotalLetters     int
	Incorrect        int
	WPM              float64
	RawWPM           float64
	Accuracy         float64
}

// Score is one persisted session result.
type Score struct {
	ID        int64
	SessionID string
	Timestamp time.Time
	WPM       int
	Raw       int
	Accuracy  float64
}

// Averages holds all-time running averages over every saved score.
type Averages struct {
	WPM      float64
	Raw      float64
	Accuracy float64
	Count    int
}
