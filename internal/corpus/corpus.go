package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/zipfr/internal/model"
	"github.com/verte-zerg/zipfr/internal/wordfreq"
)

// Source is one input file and the name shown for it.
type Source struct {
	Path string
	Name string
}

// Expand resolves patterns into file paths. Patterns without glob syntax are
// kept as given; globs ("**" included) must match at least one file. Duplicate
// paths are dropped, keeping the first.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string
	add := func(p string) {
		key := filepath.Clean(p)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		paths = append(paths, p)
	}
	for _, pattern := range patterns {
		if !hasGlobMeta(pattern) {
			add(pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files")
	}
	return paths, nil
}

func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// Sources pairs paths with display names. names[i] names paths[i]; a missing
// or blank name falls back to the file name without its extension. first, when
// set, overrides the first dataset's name.
func Sources(paths []string, first string, names []string) ([]Source, error) {
	if len(names) > len(paths) {
		return nil, fmt.Errorf("got %d names for %d files", len(names), len(paths))
	}
	out := make([]Source, len(paths))
	for i, p := range paths {
		name := ""
		if i < len(names) {
			name = strings.TrimSpace(names[i])
		}
		if name == "" {
			name = StemName(p)
		}
		out[i] = Source{Path: p, Name: name}
	}
	if first = strings.TrimSpace(first); first != "" && len(out) > 0 {
		out[0].Name = first
	}
	return out, nil
}

// StemName returns the base name of path without its extension.
func StemName(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// Load reads and analyzes one source. A nil tagger leaves words untagged.
func Load(src Source, tagger wordfreq.Tagger, opts Options) (*model.Dataset, error) {
	file, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", src.Path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for a read-only corpus file.
			_ = cerr
		}
	}()

	parseStart := time.Now()
	tokens, hash, err := Tokenize(file, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", src.Path, err)
	}
	parsed := time.Since(parseStart)

	analyzeStart := time.Now()
	table := wordfreq.Build(tokens, tagger)
	analyzed := time.Since(analyzeStart)

	return &model.Dataset{
		Name:            src.Name,
		Path:            src.Path,
		Words:           table.Words,
		TotalWords:      table.TotalWords,
		UniqueWords:     table.UniqueWords,
		ParseDuration:   parsed,
		AnalyzeDuration: analyzed,
		ContentHash:     hash,
	}, nil
}

// LoadAll loads every source in order and stops at the first failure.
func LoadAll(sources []Source, tagger wordfreq.Tagger, opts Options, logger *log.Logger) ([]*model.Dataset, error) {
	datasets := make([]*model.Dataset, 0, len(sources))
	for _, src := range sources {
		ds, err := Load(src, tagger, opts)
		if err != nil {
			return nil, err
		}
		if logger != nil {
			logger.Debug("loaded dataset",
				"name", ds.Name,
				"path", ds.Path,
				"words", ds.TotalWords,
				"unique", ds.UniqueWords,
				"parse", ds.ParseDuration,
				"analyze", ds.AnalyzeDuration,
			)
		}
		datasets = append(datasets, ds)
	}
	return datasets, nil
}
