// Package corpus turns text files into analyzed datasets.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/surgebase/porter2"
)

// Options controls token normalization.
type Options struct {
	// Stem reduces each token to its Porter2 stem.
	Stem bool
}

// Tokenize splits r on whitespace and normalizes each piece: non-letters are
// dropped and the rest is lowercased. Pieces with no letters are skipped. A
// piece may be arbitrarily long. The returned hash covers the raw bytes read.
func Tokenize(r io.Reader, opts Options) ([]string, uint64, error) {
	digest := xxhash.New()
	reader := bufio.NewReaderSize(io.TeeReader(r, digest), 64*1024)

	var (
		tokens []string
		word   strings.Builder
	)
	flush := func() {
		if word.Len() == 0 {
			return
		}
		token := word.String()
		word.Reset()
		if opts.Stem {
			token = porter2.Stem(token)
		}
		tokens = append(tokens, token)
	}
	for {
		ch, _, err := reader.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read text: %w", err)
		}
		switch {
		case unicode.IsSpace(ch):
			flush()
		case unicode.IsLetter(ch):
			word.WriteRune(unicode.ToLower(ch))
		}
	}
	flush()
	return tokens, digest.Sum64(), nil
}
