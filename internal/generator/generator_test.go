package generator

import (
	"strings"
	"testing"
	"unicode"
)

func TestTextWordCount(t *testing.T) {
	g := NewSeeded(1)
	text := g.Text([]string{"one", "two", "three"}, Params{Words: 10})
	words := strings.Fields(text)
	if len(words) != 10 {
		t.Fatalf("expected 10 words, got %d: %q", len(words), text)
	}
}

func TestTextCapsExtremes(t *testing.T) {
	g := NewSeeded(2)
	source := []string{"alpha", "beta"}

	text := g.Text(source, Params{Words: 20, CapsPct: 1.0})
	for _, word := range strings.Fields(text) {
		if !unicode.IsUpper([]rune(word)[0]) {
			t.Fatalf("expected capitalized word, got %q", word)
		}
	}

	text = g.Text(source, Params{Words: 20, CapsPct: 0})
	for _, word := range strings.Fields(text) {
		if unicode.IsUpper([]rune(word)[0]) {
			t.Fatalf("expected lowercase word, got %q", word)
		}
	}
}

func TestTextPunctExtremes(t *testing.T) {
	g := NewSeeded(3)
	source := []string{"alpha", "beta"}
	punct := []rune{'.', '!'}

	text := g.Text(source, Params{Words: 20, PunctPct: 1.0, PunctSet: punct})
	for _, word := range strings.Fields(text) {
		last := []rune(word)[len([]rune(word))-1]
		if last != '.' && last != '!' {
			t.Fatalf("expected punctuated word, got %q", word)
		}
	}

	text = g.Text(source, Params{Words: 20, PunctPct: 0, PunctSet: punct})
	if strings.ContainsAny(text, ".!") {
		t.Fatalf("expected no punctuation, got %q", text)
	}
}

func TestTextWeightedPrefersWeakWords(t *testing.T) {
	g := NewSeeded(4)
	source := []string{"zzz", "aaa"}
	weak := map[rune]struct{}{'z': {}}

	text := g.Text(source, Params{Words: 200, WeakSet: weak, WeakFactor: 10})
	count := strings.Count(text, "zzz")
	if count <= 120 {
		t.Fatalf("expected weak word to dominate, got %d of 200", count)
	}
}
