package corpus

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"

	"github.com/verte-zerg/zipfr/internal/model"
)

func TestTokenizeNormalizes(t *testing.T) {
	tokens, _, err := Tokenize(strings.NewReader("Hello, world!\n hello-there 42 don't\tÉcole"), Options{})
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	want := []string{"hello", "world", "hellothere", "dont", "école"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("expected %q, got %q", want, tokens)
	}
}

func TestTokenizeLongRun(t *testing.T) {
	long := strings.Repeat("ab1", 1<<20)
	tokens, _, err := Tokenize(strings.NewReader("before "+long+"\nafter"), Options{})
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(tokens) != 3 || tokens[0] != "before" || tokens[2] != "after" {
		t.Fatalf("unexpected tokens around long run: %d", len(tokens))
	}
	if tokens[1] != strings.Repeat("ab", 1<<20) {
		t.Fatalf("expected long run kept as one word of %d bytes, got %d", 2<<20, len(tokens[1]))
	}
}

func TestTokenizeStems(t *testing.T) {
	tokens, _, err := Tokenize(strings.NewReader("running runs"), Options{Stem: true})
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if !reflect.DeepEqual(tokens, []string{"run", "run"}) {
		t.Fatalf("unexpected stems %q", tokens)
	}
}

func TestTokenizeHashesContent(t *testing.T) {
	text := "the quick brown fox"
	_, hash, err := Tokenize(strings.NewReader(text), Options{})
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if hash != xxhash.Sum64String(text) {
		t.Fatalf("expected content hash of raw text")
	}
}

func TestTokenizeEmpty(t *testing.T) {
	tokens, _, err := Tokenize(strings.NewReader("  123 !!! \n"), Options{})
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(tokens) != 0 {
		t.Fatalf("expected no tokens, got %q", tokens)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "sub", "c.txt"), "c")
	writeFile(t, filepath.Join(dir, "notes.md"), "d")

	paths, err := Expand([]string{filepath.Join(dir, "**", "*.txt"), filepath.Join(dir, "a.txt")})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "sub", "c.txt"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("expected %q, got %q", want, paths)
	}
}

func TestExpandErrors(t *testing.T) {
	if _, err := Expand([]string{filepath.Join(t.TempDir(), "*.txt")}); err == nil {
		t.Fatalf("expected error for glob without matches")
	}
	if _, err := Expand(nil); err == nil {
		t.Fatalf("expected error for no patterns")
	}
	paths, err := Expand([]string{"missing.txt"})
	if err != nil || len(paths) != 1 {
		t.Fatalf("expected literal path to pass through, got %q, %v", paths, err)
	}
}

func TestSourcesNames(t *testing.T) {
	srcs, err := Sources([]string{"texts/moby.txt", "texts/alice.txt", "README"}, "", []string{"", "wonderland"})
	if err != nil {
		t.Fatalf("sources: %v", err)
	}
	got := []string{srcs[0].Name, srcs[1].Name, srcs[2].Name}
	if !reflect.DeepEqual(got, []string{"moby", "wonderland", "README"}) {
		t.Fatalf("unexpected names %q", got)
	}

	srcs, err = Sources([]string{"a.txt", "b.txt"}, "first", nil)
	if err != nil || srcs[0].Name != "first" || srcs[1].Name != "b" {
		t.Fatalf("expected first name override, got %+v, %v", srcs, err)
	}

	if _, err := Sources([]string{"a.txt"}, "", []string{"x", "y"}); err == nil {
		t.Fatalf("expected error for surplus names")
	}
}

type fixedTagger map[string][]model.Tag

func (f fixedTagger) TagsFor(word string) []model.Tag {
	return f[word]
}

func TestLoadBuildsDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fox.txt")
	text := "The quick brown fox jumps over the lazy dog. The dog sleeps."
	writeFile(t, path, text)

	stop := model.Tag{Name: "stopwords"}
	ds, err := Load(Source{Path: path, Name: "fox"}, fixedTagger{"the": {stop}}, Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Name != "fox" || ds.Path != path {
		t.Fatalf("unexpected identity %q %q", ds.Name, ds.Path)
	}
	if ds.TotalWords != 12 || ds.UniqueWords != 9 {
		t.Fatalf("expected 12 words / 9 unique, got %d / %d", ds.TotalWords, ds.UniqueWords)
	}
	if ds.Words[0].Word != "the" || ds.Words[0].Count != 3 || !ds.Words[0].HasTag("stopwords") {
		t.Fatalf("unexpected top word %+v", ds.Words[0])
	}
	if ds.Words[1].Word != "dog" || ds.Words[1].Count != 2 {
		t.Fatalf("unexpected second word %+v", ds.Words[1])
	}
	if ds.ContentHash != xxhash.Sum64String(text) {
		t.Fatalf("unexpected content hash")
	}
}

func TestLoadAllStopsOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	writeFile(t, good, "alpha beta")
	_, err := LoadAll([]Source{{Path: good, Name: "good"}, {Path: filepath.Join(dir, "nope.txt"), Name: "nope"}}, nil, Options{}, nil)
	if err == nil || !strings.Contains(err.Error(), "failed to open") {
		t.Fatalf("expected open error, got %v", err)
	}
}
