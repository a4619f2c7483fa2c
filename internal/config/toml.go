// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Display  DisplayConfig  `toml:"display"`
	History  HistoryConfig  `toml:"history"`
	Log      LogConfig      `toml:"log"`
}

// AnalysisConfig maps corpus and tagging settings.
type AnalysisConfig struct {
	Top          *int    `toml:"top"`
	Tags         *string `toml:"tags"`
	StopwordsTag *string `toml:"stopwords-tag"`
	Stem         *bool   `toml:"stem"`
}

// DisplayConfig maps the initial display state of a session.
type DisplayConfig struct {
	LogScale      *bool   `toml:"log-scale"`
	Zipf          *bool   `toml:"zipf"`
	ZipfBasis     *string `toml:"zipf-basis"`
	ZipfReference *string `toml:"zipf-reference"`
	ChartScope    *string `toml:"chart-scope"`
	Values        *string `toml:"values"`
}

// HistoryConfig maps run history settings.
type HistoryConfig struct {
	Enabled *bool `toml:"enabled"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// Allowed values of the enumerated display keys.
var (
	ZipfBasisValues     = []string{"filtered", "unfiltered"}
	ZipfReferenceValues = []string{"absolute", "relative"}
	ChartScopeValues    = []string{"window", "all"}
	ValuesValues        = []string{"raw", "percent"}
	LogLevelValues      = []string{"debug", "info", "warn", "error"}
)

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerated keys.
func (c FileConfig) Validate() error {
	if c.Analysis.Top != nil && *c.Analysis.Top < 0 {
		return fmt.Errorf("analysis.top must be >= 0")
	}
	checks := []struct {
		key     string
		value   *string
		allowed []string
	}{
		{"display.zipf-basis", c.Display.ZipfBasis, ZipfBasisValues},
		{"display.zipf-reference", c.Display.ZipfReference, ZipfReferenceValues},
		{"display.chart-scope", c.Display.ChartScope, ChartScopeValues},
		{"display.values", c.Display.Values, ValuesValues},
		{"log.level", c.Log.Level, LogLevelValues},
	}
	for _, check := range checks {
		if check.value == nil {
			continue
		}
		if err := OneOf(check.key, *check.value, check.allowed); err != nil {
			return err
		}
	}
	return nil
}

// OneOf reports an error naming key when value is not in allowed.
func OneOf(key, value string, allowed []string) error {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q (want one of: %s)", key, value, strings.Join(allowed, ", "))
}
