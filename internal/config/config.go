package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user-level settings. Stored timestamps are always UTC;
// Timezone only affects how exports and listings are presented.
type Config struct {
	DBPath       string `yaml:"db_path"`
	Timezone     string `yaml:"timezone"`
	ShowSegments bool   `yaml:"show_segments"`
}

// Default returns the configuration used when no config file exists.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return Config{
		DBPath:       filepath.Join(home, ".worktime", "worktime.db"),
		Timezone:     "UTC",
		ShowSegments: true,
	}, nil
}

// Load reads ~/.worktime/config.yaml when present, fills unset fields
// from defaults, and applies the WORKTIME_DB environment override.
func Load() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	path := filepath.Join(home, ".worktime", "config.yaml")

	raw, err := os.ReadFile(path)
	if err == nil {
		// Pointer fields distinguish "unset" from a zero value.
		var fileCfg struct {
			DBPath       *string `yaml:"db_path"`
			Timezone     *string `yaml:"timezone"`
			ShowSegments *bool   `yaml:"show_segments"`
		}
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		if fileCfg.DBPath != nil && *fileCfg.DBPath != "" {
			cfg.DBPath = *fileCfg.DBPath
		}
		if fileCfg.Timezone != nil && *fileCfg.Timezone != "" {
			cfg.Timezone = *fileCfg.Timezone
		}
		if fileCfg.ShowSegments != nil {
			cfg.ShowSegments = *fileCfg.ShowSegments
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	if env := os.Getenv("WORKTIME_DB"); env != "" {
		cfg.DBPath = env
	}
	return cfg, nil
}
