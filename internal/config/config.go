// Package config loads certdeck settings from a YAML file with
// environment overrides.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the user-tunable settings.
type Config struct {
	// LearnerID identifies whose progress is tracked. Single-user
	// installs keep the default.
	LearnerID string `mapstructure:"learner_id"`
	// DBPath overrides the default SQLite database location.
	DBPath string `mapstructure:"db_path"`
	// DefaultMode is the study mode used when none is given:
	// progressive, random, or all. Unknown values fall back to all.
	DefaultMode string `mapstructure:"default_mode"`
}

// Load reads configuration from configFile, or from
// $HOME/.config/certdeck/config.yaml (then the working directory) when
// empty. A missing file yields the defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("$HOME/.config/certdeck")
		v.AddConfigPath(".")
	}

	v.SetDefault("learner_id", "default")
	v.SetDefault("default_mode", "progressive")

	if err := v.BindEnv("learner_id", "CERTDECK_LEARNER"); err != nil {
		return nil, fmt.Errorf("bind CERTDECK_LEARNER: %w", err)
	}
	if err := v.BindEnv("db_path", "CERTDECK_DB"); err != nil {
		return nil, fmt.Errorf("bind CERTDECK_DB: %w", err)
	}
	if err := v.BindEnv("default_mode", "CERTDECK_MODE"); err != nil {
		return nil, fmt.Errorf("bind CERTDECK_MODE: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	return &cfg, nil
}
