package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWordsDedupesAndFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.txt")
	data := "the\n# comment\nOf\n\nthe\ncafé\nand\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	words, err := LoadWords(path, FilterForLang("en"))
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	want := []string{"the", "of", "and"}
	if len(words) != len(want) {
		t.Fatalf("expected %v, got %v", want, words)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, words)
		}
	}
}

func TestLoadWordsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	if _, err := LoadWords(path, nil); err == nil {
		t.Fatalf("expected error for empty list")
	}
}
