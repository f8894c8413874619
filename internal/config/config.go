// Package config loads the optional YAML settings file. Command-line flags
// and environment variables are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/girassol/internal/constants"
	"github.com/julianstephens/girassol/internal/utils"
)

type AI struct {
	Endpoint  string `yaml:"endpoint"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	Language  string `yaml:"language"`
}

type Reminder struct {
	Interval       time.Duration `yaml:"interval"`
	GracePeriodMin int           `yaml:"grace_period_min"`
}

type Backup struct {
	MaxBackups int `yaml:"max_backups"`
}

// Config is the contents of config.yaml
type Config struct {
	Store    string   `yaml:"store"`
	Timezone string   `yaml:"timezone"`
	Debug    bool     `yaml:"debug"`
	AI       AI       `yaml:"ai"`
	Reminder Reminder `yaml:"reminder"`
	Backup   Backup   `yaml:"backup"`
}

// Default returns the settings used when no file exists
func Default() *Config {
	return &Config{
		Store:    constants.DefaultConfigPath,
		Timezone: constants.DefaultTimezone,
		AI: AI{
			Endpoint:  constants.DefaultAIEndpoint,
			Model:     constants.DefaultAIModel,
			APIKeyEnv: constants.DefaultAIAPIKeyEnv,
			Language:  constants.DefaultAILanguage,
		},
		Reminder: Reminder{
			Interval:       constants.DefaultReminderInterval,
			GracePeriodMin: constants.DefaultNotificationGracePeriodMin,
		},
		Backup: Backup{MaxBackups: constants.MaxBackups},
	}
}

// DefaultPath is ~/.config/girassol/config.yaml
func DefaultPath() string {
	return filepath.Join(constants.DefaultConfigDir, constants.DefaultConfigFile)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", expanded, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", expanded, err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", expanded, err)
	}
	return cfg, nil
}

// fillDefaults restores defaults for keys present but left empty
func (c *Config) fillDefaults() {
	d := Default()
	if c.Store == "" {
		c.Store = d.Store
	}
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.AI.Endpoint == "" {
		c.AI.Endpoint = d.AI.Endpoint
	}
	if c.AI.Model == "" {
		c.AI.Model = d.AI.Model
	}
	if c.AI.APIKeyEnv == "" {
		c.AI.APIKeyEnv = d.AI.APIKeyEnv
	}
	if c.AI.Language == "" {
		c.AI.Language = d.AI.Language
	}
	if c.Reminder.Interval == 0 {
		c.Reminder.Interval = d.Reminder.Interval
	}
	if c.Reminder.GracePeriodMin == 0 {
		c.Reminder.GracePeriodMin = d.Reminder.GracePeriodMin
	}
	if c.Backup.MaxBackups == 0 {
		c.Backup.MaxBackups = d.Backup.MaxBackups
	}
}

func (c *Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("unknown timezone %q", c.Timezone)
	}
	if c.Reminder.Interval < time.Second {
		return fmt.Errorf("reminder interval %s is shorter than 1s", c.Reminder.Interval)
	}
	if c.Reminder.GracePeriodMin < 0 {
		return fmt.Errorf("reminder grace period cannot be negative")
	}
	if c.Backup.MaxBackups < 0 {
		return fmt.Errorf("backup.max_backups cannot be negative")
	}
	return nil
}

// GracePeriod returns the reminder window as a duration
func (c *Config) GracePeriod() time.Duration {
	return time.Duration(c.Reminder.GracePeriodMin) * time.Minute
}

// ExpandPath replaces a leading ~/ with the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory to expand path '%s': %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
