// Package session implements the typing engine: target text model,
// keystroke tracking, and session coordination.
package session

import "errors"

// ErrEmptyText is returned when a session is created from a text with no
// characters.
var ErrEmptyText = errors.New("target text is empty")

// ErrOutOfBounds is returned when input arrives after the text has been
// fully typed. The caller should stop sending keystrokes once Done is true.
var ErrOutOfBounds = errors.New("input past end of text")

// State describes the judged condition of a single target character.
type State int

const (
	// StateUntouched means the character has never been typed.
	StateUntouched State = iota
	// StateCorrect means the character was typed correctly.
	StateCorrect
	// StateCorrected means the character was typed wrong at some point and
	// has since been retyped correctly.
	StateCorrected
	// StateWrong means the last keystroke at this position was incorrect.
	StateWrong
	// StateWasCorrect means a correct character was deleted.
	StateWasCorrect
	// StateWasCorrected means a corrected character was deleted.
	StateWasCorrected
	// StateWasWrong means a wrong character was deleted.
	StateWasWrong
)

// Typed reports whether the character currently stands in the input.
func (s State) Typed() bool {
	return s == StateCorrect || s == StateCorrected || s == StateWrong
}

// Deleted reports whether the character was typed and later deleted.
func (s State) Deleted() bool {
	return s == StateWasCorrect || s == StateWasCorrected || s == StateWasWrong
}

// severity is the explicit total order used for word aggregation. A word's
// state is the maximum severity among its characters, so a single wrong
// character outweighs any number of correct ones. Deleted states rank above
// typed ones so a word visibly regresses while its error is being erased.
var severityRank = map[State]int{
	StateUntouched:    0,
	StateCorrect:      1,
	StateCorrected:    2,
	StateWrong:        3,
	StateWasCorrect:   4,
	StateWasCorrected: 5,
	StateWasWrong:     6,
}

func severity(s State) int {
	return severityRank[s]
}

// Character is one code point of the target text together with its judged
// state.
type Character struct {
	Rune  rune
	State State
}

// Word is a maximal run of non-whitespace characters. Start and End are
// character indexes, End exclusive. State aggregates the member characters
// by maximum severity.
type Word struct {
	Start int
	End   int
	Text  string
	State State
}

// Contains reports whether the character index falls inside the word.
func (w Word) Contains(index int) bool {
	return index >= w.Start && index < w.End
}

// Text is the immutable structural layout of a target string: a flat
// character sequence, its word partition, and a parallel char→word index
// for O(1) owning-word lookup. Only the per-character and per-word states
// mutate during a session.
type Text struct {
	chars []Character
	words []Word
	// wordIndex maps a character index to its word index, -1 for whitespace.
	wordIndex []int
}

// NewText parses the target string into characters and words.
func NewText(target string) (*Text, error) {
	runes := []rune(target)
	if len(runes) == 0 {
		return nil, ErrEmptyText
	}

	t := &Text{
		chars:     make([]Character, 0, len(runes)),
		wordIndex: make([]int, 0, len(runes)),
	}

	wordStart := -1
	for i, r := range runes {
		if isWhitespace(r) {
			if wordStart >= 0 {
				t.addWord(runes, wordStart, i)
				wordStart = -1
			}
			t.wordIndex = append(t.wordIndex, -1)
		} else {
			if wordStart < 0 {
				wordStart = i
			}
			t.wordIndex = append(t.wordIndex, len(t.words))
		}
		t.chars = append(t.chars, Character{Rune: r})
	}
	if wordStart >= 0 {
		t.addWord(runes, wordStart, len(runes))
	}
	return t, nil
}

func (t *Text) addWord(runes []rune, start, end int) {
	t.words = append(t.words, Word{
		Start: start,
		End:   end,
		Text:  string(runes[start:end]),
	})
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Len returns the number of characters in the text.
func (t *Text) Len() int {
	return len(t.chars)
}

// WordCount returns the number of words in the text.
func (t *Text) WordCount() int {
	return len(t.words)
}

// CharAt returns the character at the given index.
func (t *Text) CharAt(index int) (Character, bool) {
	if index < 0 || index >= len(t.chars) {
		return Character{}, false
	}
	return t.chars[index], true
}

// WordAt returns the word at the given word index.
func (t *Text) WordAt(index int) (Word, bool) {
	if index < 0 || index >= len(t.words) {
		return Word{}, false
	}
	return t.words[index], true
}

// WordContaining returns the word owning the character at the given index.
// Whitespace characters belong to no word.
func (t *Text) WordContaining(index int) (Word, bool) {
	if index < 0 || index >= len(t.wordIndex) {
		return Word{}, false
	}
	wi := t.wordIndex[index]
	if wi < 0 {
		return Word{}, false
	}
	return t.words[wi], true
}

// setState updates a character's state and keeps the owning word's
// aggregate in sync. Upgrades are O(1); a downgrade rescans the word only
// when the changed character may have been the one pinning the aggregate.
func (t *Text) setState(index int, state State) {
	t.chars[index].State = state

	wi := t.wordIndex[index]
	if wi < 0 {
		return
	}
	word := &t.words[wi]

	switch current := word.State; {
	case severity(state) > severity(current):
		word.State = state
	case severity(state) < severity(current):
		for i := word.Start; i < word.End; i++ {
			if i != index && t.chars[i].State == current {
				return
			}
		}
		t.recalculateWordState(wi)
	}
}

func (t *Text) recalculateWordState(wordIndex int) {
	word := &t.words[wordIndex]
	state := StateUntouched
	for i := word.Start; i < word.End; i++ {
		if severity(t.chars[i].State) > severity(state) {
			state = t.chars[i].State
		}
	}
	word.State = state
}
