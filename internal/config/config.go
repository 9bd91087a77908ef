// Package config loads remindr.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// EnvPath names the environment variable that points at a config file.
const EnvPath = "REMINDR_CONFIG"

type Config struct {
	Database Database `toml:"database"`
	Editor   Editor   `toml:"editor"`
	Theme    Theme    `toml:"theme"`
	Log      Log      `toml:"log"`
	Save     Save     `toml:"save"`
}

type Database struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

type Editor struct {
	HistoryLimit     int `toml:"history_limit"`
	TabInsertsSpaces int `toml:"tab_inserts_spaces"`
}

// Theme colors are lipgloss color strings: "#rrggbb" or an ANSI index.
type Theme struct {
	CodeBackground string `toml:"code_background"`
	CodeForeground string `toml:"code_foreground"`
	Selection      string `toml:"selection"`
	Marked         string `toml:"marked"`
}

type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type Save struct {
	Debounce Duration `toml:"debounce"`
}

// Duration reads TOML strings like "1s" or "250ms".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func Default() Config {
	return Config{
		Database: Database{Driver: "sqlite", DSN: defaultDSN()},
		Editor:   Editor{HistoryLimit: 100},
		Theme: Theme{
			CodeBackground: "#3b3f46",
			CodeForeground: "#e5c07b",
			Selection:      "237",
			Marked:         "60",
		},
		Log:  Log{Level: "info"},
		Save: Save{Debounce: Duration{time.Second}},
	}
}

func defaultDSN() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "remindr", "remindr.db")
	}
	return "remindr.db"
}

// ParseError reports a malformed or invalid config file.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Key    string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("config %s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
	case e.Key != "":
		return fmt.Sprintf("config %s: %s: %v", e.Path, e.Key, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Resolve picks the config path: the flag value, then $REMINDR_CONFIG, then
// the user config directory.
func Resolve(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "remindr", "remindr.toml")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "remindr", "remindr.toml")
	}
	return ""
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes data over the defaults and validates the result.
func Parse(path string, data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		pe := &ParseError{Path: path, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return Default(), pe
	}
	if err := cfg.validate(); err != nil {
		pe := &ParseError{Path: path, Err: err}
		var ke *keyError
		if errors.As(err, &ke) {
			pe.Key, pe.Err = ke.key, ke.err
		}
		return Default(), pe
	}
	return cfg, nil
}

type keyError struct {
	key string
	err error
}

func (e *keyError) Error() string { return e.key + ": " + e.err.Error() }

func (c Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return &keyError{"database.driver", fmt.Errorf("unknown driver %q", c.Database.Driver)}
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return &keyError{"database.dsn", errors.New("must not be empty")}
	}
	if c.Editor.TabInsertsSpaces < 0 || c.Editor.TabInsertsSpaces > 16 {
		return &keyError{"editor.tab_inserts_spaces", fmt.Errorf("out of range: %d", c.Editor.TabInsertsSpaces)}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return &keyError{"log.level", fmt.Errorf("unknown level %q", c.Log.Level)}
	}
	if c.Save.Debounce.Duration <= 0 {
		return &keyError{"save.debounce", errors.New("must be positive")}
	}
	return nil
}
