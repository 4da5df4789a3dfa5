package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Currency             string `toml:"currency"`
	DefaultMonthStartDay int    `toml:"default_month_start_day"`
	DateFormat           string `toml:"date_format"`
}

func DefaultConfig() *Config {
	return &Config{
		Currency:             "€",
		DefaultMonthStartDay: 1,
		DateFormat:           "2006-01-02",
	}
}

func WorkingHoursDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".workinghours"), nil
}

func ConfigPath() (string, error) {
	dir, err := WorkingHoursDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func DatabasePath() (string, error) {
	dir, err := WorkingHoursDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "db", "workinghours.sqlite"), nil
}

func ErrorLogPath() (string, error) {
	dir, err := WorkingHoursDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "errors.log"), nil
}

func EnsureDirectories() error {
	dir, err := WorkingHoursDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	dbDir := filepath.Join(dir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}

	return nil
}

func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := EnsureDirectories(); err != nil {
			return nil, err
		}
		if err := Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, err
	}

	// Only 1 and 16 are valid cycle anchors; reset anything else so new
	// companies never inherit a broken default.
	if cfg.DefaultMonthStartDay != 1 && cfg.DefaultMonthStartDay != 16 {
		cfg.DefaultMonthStartDay = 1
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = DefaultConfig().DateFormat
	}

	return cfg, nil
}

func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}
