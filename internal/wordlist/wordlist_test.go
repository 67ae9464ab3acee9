package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFiltersWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "hello\n\nWorld\nrésumé\ndon't\nquiet\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	words, err := Load(path)
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	if len(words) != 2 || words[0] != "hello" || words[1] != "quiet" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestLoadEmptyListFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("RÉSUMÉ\n123\n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for empty filtered list")
	}
}

func TestPracticable(t *testing.T) {
	if !Practicable("hello") {
		t.Fatalf("expected hello to be practicable")
	}
	for _, word := range []string{"", "World", "don't", "co-op", "naïve"} {
		if Practicable(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestDefaultList(t *testing.T) {
	words := Default()
	if len(words) < 100 {
		t.Fatalf("default list too small: %d", len(words))
	}
	for _, w := range words {
		if !Practicable(w) {
			t.Fatalf("default list contains unusable word %q", w)
		}
	}
}
