package tui

import (
	"testing"
	"time"

	"github.com/verte-zerg/keyflow/internal/session"
)

func mustSession(t *testing.T, target string, typed string) *session.Session {
	t.Helper()
	sess, err := session.New(target)
	if err != nil {
		t.Fatalf("session.New(%q) error = %v", target, err)
	}
	for _, r := range typed {
		if _, err := sess.Input(r, time.Second); err != nil {
			t.Fatalf("Input(%q) error = %v", r, err)
		}
	}
	return sess
}

func TestBuildStyledRunesCursor(t *testing.T) {
	sess := mustSession(t, "ab", "a")

	runes := buildStyledRunes(sess.Text(), sess.Pos())
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined current-word style at the cursor")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	sess := mustSession(t, "ab", "ax")

	runes := buildStyledRunes(sess.Text(), sess.Pos())
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style showing the target rune")
	}
}

func TestBuildStyledRunesCorrectedStyle(t *testing.T) {
	sess := mustSession(t, "ab", "x")
	sess.Delete(time.Second)
	if _, err := sess.Input('a', time.Second); err != nil {
		t.Fatalf("Input() error = %v", err)
	}

	runes := buildStyledRunes(sess.Text(), sess.Pos())
	if runes[0].s != correctedStyle.Render("a") {
		t.Fatalf("expected corrected style for retyped rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	sess := mustSession(t, "one two", "o")

	runes := buildStyledRunes(sess.Text(), sess.Pos())
	if runes[0].s != correctStyle.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("n") {
		t.Fatalf("expected underlined current-word style at the cursor")
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
	if runes[6].s != pendingStyle.Render("o") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	sess := mustSession(t, "a b", "ax")

	runes := buildStyledRunes(sess.Text(), sess.Pos())
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestWordForCursorOnWhitespace(t *testing.T) {
	sess := mustSession(t, "ab cd", "ab")

	word, ok := wordForCursor(sess.Text(), sess.Pos())
	if !ok {
		t.Fatalf("expected a word for cursor on whitespace")
	}
	if word.Text != "cd" {
		t.Fatalf("expected next word %q, got %q", "cd", word.Text)
	}
}

func TestWrapStyledRunesBreaksAtSpace(t *testing.T) {
	sess := mustSession(t, "one two", "")
	runes := buildStyledRunes(sess.Text(), 0)

	wrapped := wrapStyledRunes(runes, 5)
	lines := splitLines(wrapped)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), wrapped)
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
