package session

import (
	"errors"
	"testing"
)

func TestNewTextWordBoundaries(t *testing.T) {
	text, err := NewText("first word")
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	if text.Len() != 10 {
		t.Fatalf("expected 10 characters, got %d", text.Len())
	}
	if text.WordCount() != 2 {
		t.Fatalf("expected 2 words, got %d", text.WordCount())
	}

	first, ok := text.WordAt(0)
	if !ok || first.Text != "first" || first.Start != 0 || first.End != 5 {
		t.Fatalf("unexpected first word: %+v", first)
	}
	second, ok := text.WordAt(1)
	if !ok || second.Text != "word" || second.Start != 6 || second.End != 10 {
		t.Fatalf("unexpected second word: %+v", second)
	}
}

func TestNewTextEmpty(t *testing.T) {
	if _, err := NewText(""); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestNewTextUnicode(t *testing.T) {
	text, err := NewText("café 🚀")
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	// c, a, f, é, space, rocket: six code points.
	if text.Len() != 6 {
		t.Fatalf("expected 6 characters, got %d", text.Len())
	}
	ch, ok := text.CharAt(3)
	if !ok || ch.Rune != 'é' {
		t.Fatalf("expected é at index 3, got %+v", ch)
	}
	word, ok := text.WordContaining(5)
	if !ok || word.Text != "🚀" {
		t.Fatalf("expected rocket word, got %+v", word)
	}
}

func TestWordContaining(t *testing.T) {
	text, err := NewText("cat dog")
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	cases := []struct {
		index int
		word  string
		ok    bool
	}{
		{0, "cat", true},
		{2, "cat", true},
		{3, "", false}, // whitespace belongs to no word
		{4, "dog", true},
		{6, "dog", true},
		{7, "", false}, // out of range
		{-1, "", false},
	}
	for _, tc := range cases {
		word, ok := text.WordContaining(tc.index)
		if ok != tc.ok {
			t.Fatalf("index %d: expected ok=%v, got %v", tc.index, tc.ok, ok)
		}
		if ok && word.Text != tc.word {
			t.Fatalf("index %d: expected word %q, got %q", tc.index, tc.word, word.Text)
		}
	}
}

func TestCharAtBounds(t *testing.T) {
	text, err := NewText("ab")
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	if _, ok := text.CharAt(2); ok {
		t.Fatalf("expected out-of-range lookup to fail")
	}
	if _, ok := text.CharAt(-1); ok {
		t.Fatalf("expected negative lookup to fail")
	}
}

func TestWordStateAggregation(t *testing.T) {
	text, err := NewText("hello world")
	if err != nil {
		t.Fatalf("new text: %v", err)
	}

	word := func(i int) State {
		w, ok := text.WordAt(i)
		if !ok {
			t.Fatalf("missing word %d", i)
		}
		return w.State
	}

	if word(0) != StateUntouched || word(1) != StateUntouched {
		t.Fatalf("expected untouched words initially")
	}

	// One correct character marks the word correct.
	text.setState(0, StateCorrect)
	if word(0) != StateCorrect {
		t.Fatalf("expected correct word, got %v", word(0))
	}

	// A wrong character outranks correct ones.
	text.setState(1, StateWrong)
	if word(0) != StateWrong {
		t.Fatalf("expected wrong word, got %v", word(0))
	}

	// Deleting the wrong character shows the regression.
	text.setState(1, StateWasWrong)
	if word(0) != StateWasWrong {
		t.Fatalf("expected was-wrong word, got %v", word(0))
	}

	// Retyping correctly leaves the word corrected.
	text.setState(1, StateCorrected)
	if word(0) != StateCorrected {
		t.Fatalf("expected corrected word, got %v", word(0))
	}

	// The second word is untouched throughout.
	if word(1) != StateUntouched {
		t.Fatalf("expected untouched second word, got %v", word(1))
	}
}

func TestWordStateDowngradeRescan(t *testing.T) {
	text, err := NewText("abc")
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	text.setState(0, StateWrong)
	text.setState(1, StateWrong)

	// Downgrading one of two wrong characters must not change the word.
	text.setState(0, StateCorrect)
	w, _ := text.WordAt(0)
	if w.State != StateWrong {
		t.Fatalf("expected word to stay wrong, got %v", w.State)
	}

	// Downgrading the last wrong character recomputes the aggregate.
	text.setState(1, StateCorrect)
	w, _ = text.WordAt(0)
	if w.State != StateCorrect {
		t.Fatalf("expected correct word, got %v", w.State)
	}
}
