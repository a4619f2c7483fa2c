// Package tags loads tag catalogs and maps words to tags.
package tags

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed default.toml
var defaultCatalog string

// Definition is one catalog entry.
type Definition struct {
	Name        string   `toml:"name" yaml:"name"`
	Color       string   `toml:"color" yaml:"color"`
	Description string   `toml:"description" yaml:"description"`
	Words       []string `toml:"words" yaml:"words"`
}

// Catalog maps tag ids to definitions.
type Catalog struct {
	Tags map[string]Definition `toml:"tags" yaml:"tags"`
}

// LoadCatalog reads a catalog file. The format is picked by extension:
// .yaml/.yml are YAML, .txt is a plain word list forming one tag named after
// the file, everything else is TOML.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return Catalog{}, fmt.Errorf("catalog path is empty")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".txt" {
		return loadWordListCatalog(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read tag catalog: %w", err)
	}
	var cat Catalog
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cat); err != nil {
			return Catalog{}, fmt.Errorf("failed to decode tag catalog: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), &cat); err != nil {
			return Catalog{}, fmt.Errorf("failed to decode tag catalog: %w", err)
		}
	}
	return cat, nil
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() (Catalog, error) {
	var cat Catalog
	if _, err := toml.Decode(defaultCatalog, &cat); err != nil {
		return Catalog{}, fmt.Errorf("failed to decode built-in tag catalog: %w", err)
	}
	return cat, nil
}

// LoadOrEmpty builds a matcher from path, or from the built-in catalog when
// path is empty. Any failure is logged and yields a matcher with no tags.
func LoadOrEmpty(path string, logger *log.Logger) *Matcher {
	var (
		cat Catalog
		err error
	)
	if path == "" {
		cat, err = DefaultCatalog()
	} else {
		cat, err = LoadCatalog(path)
	}
	if err != nil {
		if logger != nil {
			logger.Warn("running without tags", "catalog", path, "err", err)
		}
		return NewMatcher(Catalog{})
	}
	m := NewMatcher(cat)
	if logger != nil {
		logger.Debug("loaded tag catalog", "catalog", path, "tags", len(m.Tags()))
	}
	return m
}
