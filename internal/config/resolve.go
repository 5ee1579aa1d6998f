package config

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/typy/internal/generator"
	"github.com/verte-zerg/typy/internal/model"
)

const (
	DefaultLang              = "english"
	DefaultDuration          = 30
	DefaultRows              = 3
	DefaultLineLength        = 70
	DefaultUppercaseChance   = 0.2
	DefaultPunctuationChance = 0.2
	minLineLength            = 10
)

// DefaultTheme is used for every theme color that is missing or invalid.
var DefaultTheme = model.Theme{
	Fg:      "#ffffff",
	Missing: "#808080",
	Error:   "#ff0000",
	Accent:  "#ffff00",
}

// DefaultGraph is used for every graph color that is missing or invalid.
var DefaultGraph = model.GraphColors{
	Data:  "#ffff00",
	Title: "#ff0000",
	Axis:  "#ffffff",
}

var cursorStyles = map[string]model.CursorStyle{
	"DefaultUserShape":   model.CursorDefault,
	"BlinkingBlock":      model.CursorBlinkingBlock,
	"SteadyBlock":        model.CursorSteadyBlock,
	"BlinkingUnderScore": model.CursorBlinkingUnderline,
	"SteadyUnderScore":   model.CursorSteadyUnderline,
	"BlinkingBar":        model.CursorBlinkingBar,
	"SteadyBar":          model.CursorSteadyBar,
}

// Defaults returns the configuration used when no file is present.
func Defaults() model.Config {
	return model.Config{
		Lang:       DefaultLang,
		Duration:   DefaultDuration,
		Rows:       DefaultRows,
		LineLength: DefaultLineLength,
		Settings: model.ModeSettings{
			UppercaseChance:   DefaultUppercaseChance,
			PunctuationChance: DefaultPunctuationChance,
		},
		Theme:  DefaultTheme,
		Graph:  DefaultGraph,
		Cursor: model.CursorDefault,
	}
}

// Resolve merges file values over the defaults. Bad colors and cursor names
// fall back to defaults and are reported as warnings; a bad default_mode is
// an error.
func Resolve(fc FileConfig) (model.Config, []string, error) {
	cfg := Defaults()
	var warnings []string
	color := func(key string, value *string, target *string) {
		if value == nil {
			return
		}
		if !ValidHex(*value) {
			warnings = append(warnings, fmt.Sprintf("invalid color %s = %q, using %s", key, *value, *target))
			return
		}
		*target = strings.ToLower(*value)
	}

	color("theme.fg", fc.Theme.Fg, &cfg.Theme.Fg)
	color("theme.missing", fc.Theme.Missing, &cfg.Theme.Missing)
	color("theme.error", fc.Theme.Error, &cfg.Theme.Error)
	color("theme.accent", fc.Theme.Accent, &cfg.Theme.Accent)
	color("graph.data", fc.Graph.Data, &cfg.Graph.Data)
	color("graph.title", fc.Graph.Title, &cfg.Graph.Title)
	color("graph.axis", fc.Graph.Axis, &cfg.Graph.Axis)

	if fc.Cursor.Style != nil {
		style, ok := cursorStyles[*fc.Cursor.Style]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown cursor style %q, using DefaultUserShape", *fc.Cursor.Style))
		}
		cfg.Cursor = style
	}

	if fc.Modes.DefaultMode != nil {
		modes, err := generator.ParseModes([]string{*fc.Modes.DefaultMode})
		if err != nil {
			return model.Config{}, nil, fmt.Errorf("invalid modes.default_mode: %w", err)
		}
		cfg.Settings.DefaultModes = modes
	}
	if fc.Modes.UppercaseChance != nil {
		cfg.Settings.UppercaseChance = *fc.Modes.UppercaseChance
	}
	if fc.Modes.PunctuationChance != nil {
		cfg.Settings.PunctuationChance = *fc.Modes.PunctuationChance
	}

	if fc.Language.Lang != nil && strings.TrimSpace(*fc.Language.Lang) != "" {
		cfg.Lang = strings.ToLower(strings.TrimSpace(*fc.Language.Lang))
	}
	if fc.Session.Duration != nil {
		cfg.Duration = *fc.Session.Duration
	}
	if fc.Session.Rows != nil {
		cfg.Rows = *fc.Session.Rows
	}
	if fc.Session.LineLength != nil {
		cfg.LineLength = *fc.Session.LineLength
	}
	return cfg, warnings, nil
}

// ValidHex reports whether s is a #rrggbb color.
func ValidHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Validate checks a fully resolved configuration.
func Validate(cfg model.Config) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be > 0")
	}
	if cfg.Rows <= 0 {
		return fmt.Errorf("rows must be > 0")
	}
	if cfg.LineLength < minLineLength {
		return fmt.Errorf("line_length must be >= %d", minLineLength)
	}
	if cfg.Settings.UppercaseChance < 0 || cfg.Settings.UppercaseChance > 1 {
		return fmt.Errorf("uppercase_chance must be between 0 and 1")
	}
	if cfg.Settings.PunctuationChance < 0 || cfg.Settings.PunctuationChance > 1 {
		return fmt.Errorf("punctuation_chance must be between 0 and 1")
	}
	return nil
}
