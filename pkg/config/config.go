// Package config loads clampgen settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
	"github.com/Dicklesworthstone/clampgen/pkg/persist"
	"github.com/Dicklesworthstone/clampgen/pkg/preview"
)

// DefaultPreviewText is the sample rendered in the live preview.
const DefaultPreviewText = "I, too, am moist"

// DefaultCellWidthPx is how many CSS pixels one terminal column stands for.
const DefaultCellWidthPx = 10

// Config holds user settings. Zero values are replaced by defaults.
type Config struct {
	RootFontSize float64       `yaml:"root_font_size"`
	SettleDelay  time.Duration `yaml:"settle_delay"`
	CellWidthPx  float64       `yaml:"cell_width_px"`
	PreviewText  string        `yaml:"preview_text"`
	DBPath       string        `yaml:"db_path"`
	TTL          time.Duration `yaml:"ttl"`
	LogFile      string        `yaml:"log_file"`
}

// Default returns the built-in settings.
func Default() Config {
	dir := dataDir()
	return Config{
		RootFontSize: clamp.DefaultRootFontSizePx,
		SettleDelay:  preview.DefaultSettleDelay,
		CellWidthPx:  DefaultCellWidthPx,
		PreviewText:  DefaultPreviewText,
		DBPath:       filepath.Join(dir, "clampgen.db"),
		TTL:          persist.DefaultTTL,
		LogFile:      filepath.Join(dir, "clampgen.log"),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/clampgen/config.yaml or the
// platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".clampgen", "config.yaml")
	}
	return filepath.Join(dir, "clampgen", "config.yaml")
}

func dataDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".clampgen"
	}
	return filepath.Join(dir, "clampgen")
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.merge(fileCfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// merge copies every non-zero field of o into c.
func (c *Config) merge(o Config) {
	if o.RootFontSize != 0 {
		c.RootFontSize = o.RootFontSize
	}
	if o.SettleDelay != 0 {
		c.SettleDelay = o.SettleDelay
	}
	if o.CellWidthPx != 0 {
		c.CellWidthPx = o.CellWidthPx
	}
	if o.PreviewText != "" {
		c.PreviewText = o.PreviewText
	}
	if o.DBPath != "" {
		c.DBPath = o.DBPath
	}
	if o.TTL != 0 {
		c.TTL = o.TTL
	}
	if o.LogFile != "" {
		c.LogFile = o.LogFile
	}
}

// Validate rejects settings the app cannot run with. A non-positive root
// font size is left to the validation engine, which reports it next to
// the expression.
func (c Config) Validate() error {
	if math.IsNaN(c.RootFontSize) || math.IsInf(c.RootFontSize, 0) {
		return fmt.Errorf("root_font_size must be a finite number")
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("settle_delay must not be negative")
	}
	if !(c.CellWidthPx > 0) || math.IsInf(c.CellWidthPx, 0) {
		return fmt.Errorf("cell_width_px must be positive")
	}
	if c.TTL < 0 {
		return fmt.Errorf("ttl must not be negative")
	}
	return nil
}

// Save writes c as YAML to path, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
