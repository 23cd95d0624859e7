package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds persistent editor settings stored at <profileDir>/editor.yaml.
// Row heights are in terminal lines.
type Config struct {
	Theme  string `yaml:"theme,omitempty"`
	Author string `yaml:"author,omitempty"`

	DefaultRowHeight float64 `yaml:"default_row_height,omitempty"`
	MinRowHeight     float64 `yaml:"min_row_height,omitempty"`
	Overscan         int     `yaml:"overscan,omitempty"`
	Threshold        int     `yaml:"virtualize_threshold,omitempty"`

	SettleMode    string        `yaml:"settle_mode,omitempty"`
	SettleDelay   time.Duration `yaml:"settle_delay,omitempty"`
	MutationDelay time.Duration `yaml:"mutation_delay,omitempty"`
	CommitDelay   time.Duration `yaml:"commit_delay,omitempty"`
	AIDelay       time.Duration `yaml:"ai_delay,omitempty"`

	LogFile     string `yaml:"log_file,omitempty"`
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

const filename = "editor.yaml"

// DefaultAuthor signs comments when no author is configured.
const DefaultAuthor = "Anonymous"

// Load reads <profileDir>/editor.yaml and returns the parsed Config.
// If the file is absent or unreadable, a default Config is returned.
func Load(profileDir string) Config {
	cfg := Defaults()
	data, err := os.ReadFile(filepath.Join(profileDir, filename))
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults()
	}
	cfg.Validate()
	return cfg
}

// Save writes cfg to <profileDir>/editor.yaml, creating the directory if needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(filepath.Join(profileDir, filename), data, 0o644)
}

// Defaults returns the settings used when no file exists.
func Defaults() Config {
	return Config{
		Theme:            "dark",
		Author:           DefaultAuthor,
		DefaultRowHeight: 6,
		MinRowHeight:     2,
		Overscan:         3,
		Threshold:        50,
		SettleMode:       "timer",
		SettleDelay:      50 * time.Millisecond,
		MutationDelay:    100 * time.Millisecond,
		CommitDelay:      300 * time.Millisecond,
		AIDelay:          1500 * time.Millisecond,
	}
}

// Validate replaces missing or nonsensical values with defaults.
func (c *Config) Validate() {
	d := Defaults()
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.Author == "" {
		c.Author = d.Author
	}
	if c.MinRowHeight < 1 {
		c.MinRowHeight = 1
	}
	if c.DefaultRowHeight < c.MinRowHeight {
		c.DefaultRowHeight = c.MinRowHeight
	}
	if c.Overscan < 0 {
		c.Overscan = 0
	}
	if c.Threshold == 0 {
		c.Threshold = d.Threshold
	}
	if c.SettleMode != "timer" && c.SettleMode != "frame" {
		c.SettleMode = d.SettleMode
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = d.SettleDelay
	}
	if c.MutationDelay <= 0 {
		c.MutationDelay = d.MutationDelay
	}
	if c.CommitDelay <= 0 {
		c.CommitDelay = d.CommitDelay
	}
	if c.AIDelay < 0 {
		c.AIDelay = d.AIDelay
	}
}
