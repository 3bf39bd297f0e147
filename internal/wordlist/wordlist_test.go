package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFiltersAndTrims(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.txt")
	content := "alpha\n\n  beta  \nGamma\nnumber1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}

	words, err := Load(path, FilterForLang("en"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"alpha", "beta"}
	if len(words) != len(want) {
		t.Fatalf("expected %v, got %v", want, words)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, words)
		}
	}
}

func TestLoadEmptyList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	if _, err := Load(path, nil); err == nil {
		t.Fatalf("expected error for empty word list")
	}
}

func TestFilterForLangDefaultKeepsAll(t *testing.T) {
	keep := FilterForLang("de")
	if !keep("über") {
		t.Fatalf("default filter should keep non-ASCII words")
	}
}
