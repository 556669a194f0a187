// Package persist stores the two documents that survive restarts: the app
// config (window geometry and UI memory) and the UI style. Both are YAML
// files in one directory. Reads fail soft and writes only log, so a broken
// disk never stops the app.
package persist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hubastard/canopy/engine/assets"
	"github.com/hubastard/canopy/engine/ui"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDir     = "config"
	ConfigFileName = "egui.yaml"
	StyleFileName  = "style.yaml"
)

// WindowAttributes is the outer window geometry in screen coordinates.
type WindowAttributes struct {
	PosX   int `yaml:"pos_x"`
	PosY   int `yaml:"pos_y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (w WindowAttributes) Valid() bool { return w.Width > 0 && w.Height > 0 }

type AppConfig struct {
	WindowAttributes WindowAttributes `yaml:"window_attributes"`
	// Memory is stored as the UI hands it over.
	Memory ui.Memory `yaml:"ui_memory"`
}

// StyleDocument is a parsed style together with the bytes it came from.
// Path is empty when the embedded default was used.
type StyleDocument struct {
	Path  string
	Raw   []byte
	Style ui.Style
}

func (d *StyleDocument) Embedded() bool { return d.Path == "" }

type Store struct {
	dir string
	log *slog.Logger
}

// NewStore creates dir if needed.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	return &Store{dir: dir, log: logger.With("component", "persist")}, nil
}

func (s *Store) Dir() string        { return s.dir }
func (s *Store) ConfigPath() string { return filepath.Join(s.dir, ConfigFileName) }
func (s *Store) StylePath() string  { return filepath.Join(s.dir, StyleFileName) }

// LoadConfig returns the saved config, or false when there is none usable.
func (s *Store) LoadConfig() (*AppConfig, bool) {
	path := s.ConfigPath()
	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("config unreadable, using defaults", "path", path, "err", err)
		}
		return nil, false
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		s.log.Warn("config malformed, using defaults", "path", path, "err", err)
		return nil, false
	}
	if !cfg.WindowAttributes.Valid() {
		s.log.Warn("config has no usable window size, using defaults", "path", path,
			"width", cfg.WindowAttributes.Width, "height", cfg.WindowAttributes.Height)
		return nil, false
	}
	return &cfg, true
}

// SaveConfig overwrites the config document. Failures are logged and
// returned; nothing is retried.
func (s *Store) SaveConfig(cfg AppConfig) error {
	err := s.write(s.ConfigPath(), cfg)
	if err != nil {
		s.log.Error("save config", "err", err)
	}
	return err
}

// LoadStyle reads the on-disk style, falling back to the embedded default
// when the file does not exist or cannot be read. A document that does not
// parse yields false and the caller keeps its current style.
func (s *Store) LoadStyle() (*StyleDocument, bool) {
	path := s.StylePath()
	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("style unreadable, using embedded default", "path", path, "err", err)
		}
		path, raw = "", assets.DefaultStyle
	}
	st, err := ParseStyle(raw)
	if err != nil {
		s.log.Warn("style malformed, keeping current style", "path", path, "err", err)
		return nil, false
	}
	return &StyleDocument{Path: path, Raw: raw, Style: st}, true
}

// SaveStyle overwrites the style document.
func (s *Store) SaveStyle(st ui.Style) error {
	err := s.write(s.StylePath(), st)
	if err != nil {
		s.log.Error("save style", "err", err)
	}
	return err
}

// ParseStyle decodes a style over the defaults. Keys that are missing keep
// their default value; unknown keys and unusable text sizes are errors. An empty document is
// treated as malformed since editors often truncate a file before writing
// it back.
func ParseStyle(raw []byte) (ui.Style, error) {
	st := ui.DefaultStyle()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&st); err != nil {
		if errors.Is(err, io.EOF) {
			return ui.Style{}, errors.New("style document is empty")
		}
		return ui.Style{}, err
	}
	if err := st.Validate(); err != nil {
		return ui.Style{}, err
	}
	return st, nil
}

func (s *Store) write(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
