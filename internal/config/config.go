// Package config models catchsup.yml, the optional per-user settings
// file layered over the built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config models catchsup.yml.
type Config struct {
	// DataDir holds state.json and the training-log archive.
	DataDir string `yaml:"data_dir"`

	Notifier struct {
		// PollIntervalSec is the coordinator tick cadence.
		PollIntervalSec int `yaml:"poll_interval_sec"`
	} `yaml:"notifier"`

	Scheduler struct {
		ScheduleIntervalMin int   `yaml:"schedule_interval_min"`
		DailyLimitMin       int   `yaml:"daily_limit_min"`
		NoDisturbChoices    []int `yaml:"no_disturb_choices"`
	} `yaml:"scheduler"`

	Sound struct {
		Volume float64 `yaml:"volume"`
		Mute   bool    `yaml:"mute"`
	} `yaml:"sound"`
}

// Default returns the built-in configuration. DataDir defaults under
// the OS user config directory, or the working directory when that is
// unavailable.
func Default() *Config {
	var cfg Config
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	cfg.DataDir = filepath.Join(base, "catchsup")
	cfg.Notifier.PollIntervalSec = 20
	cfg.Scheduler.ScheduleIntervalMin = 20
	cfg.Scheduler.DailyLimitMin = 120
	cfg.Scheduler.NoDisturbChoices = []int{20, 45, 90}
	cfg.Sound.Volume = 0.5
	return &cfg
}

// Path returns the config file path inside a data directory.
func Path(dataDir string) string {
	if dataDir == "" {
		dataDir = "."
	}
	return filepath.Join(dataDir, "catchsup.yml")
}

// Load reads catchsup.yml from the given directory, falling back to
// defaults when the file does not exist. Values absent from the file
// keep their defaults.
func Load(dataDir string) (*Config, error) {
	data, err := os.ReadFile(Path(dataDir))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses and validates config from raw YAML bytes, layered
// over the defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config.data_dir is required")
	}
	if c.Notifier.PollIntervalSec <= 0 {
		return fmt.Errorf("config.notifier.poll_interval_sec must be positive")
	}
	if c.Scheduler.ScheduleIntervalMin <= 0 {
		return fmt.Errorf("config.scheduler.schedule_interval_min must be positive")
	}
	if c.Scheduler.DailyLimitMin <= 0 {
		return fmt.Errorf("config.scheduler.daily_limit_min must be positive")
	}
	for _, m := range c.Scheduler.NoDisturbChoices {
		if m <= 0 {
			return fmt.Errorf("config.scheduler.no_disturb_choices contains non-positive minutes")
		}
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("config.sound.volume must be within [0, 1]")
	}
	return nil
}

// StatePath returns the path of the JSON state file.
func (c *Config) StatePath() string {
	return filepath.Join(c.DataDir, "state.json")
}

// ArchivePath returns the path of the SQLite training-log archive.
func (c *Config) ArchivePath() string {
	return filepath.Join(c.DataDir, "archive.db")
}
