package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/dictcc/config"
)

const settingsKey = "settings"

// settings returns the configuration resolved by setup.
func settings(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[settingsKey].(*config.Config); ok {
		return cfg
	}
	return config.DefaultConfig()
}

// loadSettings reads the config file, if any, and lays explicitly set
// flags over it.
func loadSettings(c *cli.Context) (*config.Config, error) {
	cfg, err := loadConfigFile(c.String("config"))
	if err != nil {
		return nil, err
	}

	var opts []config.ConfigOption
	if c.IsSet("data-dir") {
		opts = append(opts, config.WithDataDir(c.String("data-dir")))
	}
	if c.IsSet("log-level") {
		opts = append(opts, config.WithLogLevel(c.String("log-level")))
	}
	if c.IsSet("language-pair") {
		opts = append(opts, config.WithLanguagePair(c.String("language-pair")))
	}
	if c.IsSet("from") {
		opts = append(opts, config.WithFrom(c.String("from")))
	}
	if c.IsSet("distance") {
		opts = append(opts, config.WithDistance(c.Int("distance")))
	}
	if c.IsSet("limit-results") {
		if c.Int("limit-results") < 1 {
			return nil, errors.New("limit-results must be at least 1")
		}
		opts = append(opts, config.WithLimit(c.Int("limit-results")))
	}
	if c.IsSet("min-similarity") {
		opts = append(opts, config.WithMinSimilarity(c.Int("min-similarity")))
	}
	if c.IsSet("completion-type") {
		opts = append(opts, config.WithCompletionType(c.String("completion-type")))
	}
	if c.IsSet("ascii") {
		opts = append(opts, config.WithASCII(c.Bool("ascii")))
	}
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadConfigFile loads path, or the default config file when path is
// empty. A missing default file is not an error.
func loadConfigFile(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	path, err := config.DefaultConfigPath()
	if err != nil {
		return config.DefaultConfig(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}
