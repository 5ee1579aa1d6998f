// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Theme    ThemeConfig    `toml:"theme"`
	Graph    GraphConfig    `toml:"graph"`
	Cursor   CursorConfig   `toml:"cursor"`
	Modes    ModesConfig    `toml:"modes"`
	Language LanguageConfig `toml:"language"`
	Session  SessionConfig  `toml:"session"`
}

// ThemeConfig maps typing screen colors.
type ThemeConfig struct {
	Fg      *string `toml:"fg"`
	Missing *string `toml:"missing"`
	Error   *string `toml:"error"`
	Accent  *string `toml:"accent"`
}

// GraphConfig maps summary chart colors.
type GraphConfig struct {
	Data  *string `toml:"data"`
	Title *string `toml:"title"`
	Axis  *string `toml:"axis"`
}

// CursorConfig maps the cursor shape.
type CursorConfig struct {
	Style *string `toml:"style"`
}

// ModesConfig maps mode defaults and chances.
type ModesConfig struct {
	DefaultMode       *string  `toml:"default_mode"`
	UppercaseChance   *float64 `toml:"uppercase_chance"`
	PunctuationChance *float64 `toml:"punctuation_chance"`
}

// LanguageConfig maps the word list language.
type LanguageConfig struct {
	Lang *string `toml:"lang"`
}

// SessionConfig maps session shape settings.
type SessionConfig struct {
	Duration   *int `toml:"duration"`
	Rows       *int `toml:"rows"`
	LineLength *int `toml:"line_length"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// FindConfig returns the first existing config file among the lookup paths,
// or the user config path when none exists.
func FindConfig() string {
	for _, path := range ConfigLookupPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return DefaultConfigPath()
}
