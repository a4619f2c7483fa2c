package tags

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// loadWordList reads one word per line. Blank lines and lines starting with
// '#' are skipped.
func loadWordList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

func loadWordListCatalog(path string) (Catalog, error) {
	words, err := loadWordList(path)
	if err != nil {
		return Catalog{}, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Catalog{Tags: map[string]Definition{
		name: {Name: name, Words: words},
	}}, nil
}
