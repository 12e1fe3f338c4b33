// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/poiesic/dictcc/core"
)

// Completion presentation styles.
const (
	CompletionList     = "list"
	CompletionCircular = "circular"
)

// Config holds the process configuration. It is resolved once at startup
// and passed explicitly to the components that need it.
type Config struct {
	// DataDir holds one index directory per language pair.
	// Default: the per-user application data directory, see DefaultDataDir.
	DataDir string `toml:"data_dir"`

	// LanguagePair selects the dictionary, e.g. "de-en". Either direction
	// names the same dictionary.
	LanguagePair string `toml:"language_pair"`

	// From is the source language of lookups.
	From string `toml:"from"`

	// Distance is the fuzzy edit distance, 0-255.
	// Default: 0 (exact matching)
	Distance int `toml:"distance"`

	// Limit caps the number of results. 0 means unlimited.
	Limit int `toml:"limit_results"`

	// MinSimilarity drops results scoring below it, 0-1000.
	// 0 disables the threshold.
	MinSimilarity int `toml:"min_similarity"`

	// CompletionType is "list" or "circular".
	// Default: "list"
	CompletionType string `toml:"completion_type"`

	// ASCII draws result tables with plain ASCII borders.
	ASCII bool `toml:"ascii"`

	// LogLevel is one of debug, info, warn, error.
	// Default: "warn"
	LogLevel string `toml:"log_level"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithDataDir sets the data directory.
func WithDataDir(dir string) ConfigOption {
	return func(c *Config) {
		c.DataDir = dir
	}
}

// WithLanguagePair sets the dictionary.
func WithLanguagePair(pair string) ConfigOption {
	return func(c *Config) {
		c.LanguagePair = pair
	}
}

// WithFrom sets the source language.
func WithFrom(lang string) ConfigOption {
	return func(c *Config) {
		c.From = lang
	}
}

// WithDistance sets the fuzzy edit distance.
func WithDistance(distance int) ConfigOption {
	return func(c *Config) {
		c.Distance = distance
	}
}

// WithLimit sets the result limit.
func WithLimit(limit int) ConfigOption {
	return func(c *Config) {
		c.Limit = limit
	}
}

// WithMinSimilarity sets the similarity threshold.
func WithMinSimilarity(min int) ConfigOption {
	return func(c *Config) {
		c.MinSimilarity = min
	}
}

// WithCompletionType sets the completion style.
func WithCompletionType(style string) ConfigOption {
	return func(c *Config) {
		c.CompletionType = style
	}
}

// WithASCII selects ASCII table borders.
func WithASCII(ascii bool) ConfigOption {
	return func(c *Config) {
		c.ASCII = ascii
	}
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) ConfigOption {
	return func(c *Config) {
		c.LogLevel = level
	}
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		CompletionType: CompletionList,
		LogLevel:       "warn",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithLanguagePair("de-en"),
//	    WithDistance(1),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	return cfg
}

// Apply applies opts in order.
func (c *Config) Apply(opts ...ConfigOption) {
	for _, opt := range opts {
		opt(c)
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Normalize ensures the configuration is in a canonical form: codes and
// styles are lowercased and an empty DataDir is replaced by the default.
func (c *Config) Normalize() {
	c.LanguagePair = strings.ToLower(strings.TrimSpace(c.LanguagePair))
	c.From = strings.ToLower(strings.TrimSpace(c.From))
	c.CompletionType = strings.ToLower(strings.TrimSpace(c.CompletionType))
	if c.CompletionType == "" {
		c.CompletionType = CompletionList
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.DataDir == "" {
		if dir, err := DefaultDataDir(); err == nil {
			c.DataDir = dir
		}
	}
}

// Validate checks that the configuration is valid.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.DataDir == "" {
		return errors.New("config: DataDir is required")
	}
	if c.Distance < 0 || c.Distance > 255 {
		return errors.New("config: Distance must be between 0 and 255")
	}
	if c.Limit < 0 {
		return errors.New("config: Limit must not be negative")
	}
	if c.MinSimilarity < 0 || c.MinSimilarity > 1000 {
		return errors.New("config: MinSimilarity must be between 0 and 1000")
	}
	if c.CompletionType != CompletionList && c.CompletionType != CompletionCircular {
		return fmt.Errorf("config: CompletionType must be %q or %q", CompletionList, CompletionCircular)
	}
	if c.LanguagePair != "" {
		if _, err := core.ParseLanguagePair(c.LanguagePair); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// Pair parses LanguagePair.
func (c *Config) Pair() (core.LanguagePair, error) {
	return core.ParseLanguagePair(c.LanguagePair)
}
