package session

// ResultKind classifies the outcome of one keystroke.
type ResultKind int

const (
	// ResultCorrect means the typed character matched the target.
	ResultCorrect ResultKind = iota
	// ResultCorrected means a previously wrong position was retyped
	// correctly.
	ResultCorrected
	// ResultWrong means the typed character did not match the target.
	ResultWrong
	// ResultDeleted means a character was removed from the input.
	ResultDeleted
)

// Keystroke is the judged outcome of one append or delete, returned to the
// caller for statistics and rendering. Rune is the target character at the
// affected position. Prev carries the state the character held before a
// deletion so historical error counts stay attributable.
type Keystroke struct {
	Rune   rune
	Result ResultKind
	Prev   State
}

// tracker applies keystrokes against a Text and maintains the input
// position. The typed runes are retained so deletions can report what was
// erased.
type tracker struct {
	typed []rune
}

// pos is the count of committed keystrokes, equal to the index of the next
// character to be judged.
func (tr *tracker) pos() int {
	return len(tr.typed)
}

func (tr *tracker) fullyTyped(textLen int) bool {
	return len(tr.typed) == textLen
}

// add judges one typed character against the target. The position must be
// inside the text; the coordinator checks bounds before calling.
func (tr *tracker) add(input rune, text *Text) Keystroke {
	index := len(tr.typed)
	target := text.chars[index]

	var state State
	var result ResultKind
	if target.Rune != input {
		state = StateWrong
		result = ResultWrong
	} else {
		switch target.State {
		case StateWasWrong:
			state = StateCorrected
			result = ResultCorrected
		case StateWasCorrected:
			// Once wrong, the character stays Corrected, but this keystroke
			// itself earned no new correction.
			state = StateCorrected
			result = ResultCorrect
		default:
			state = StateCorrect
			result = ResultCorrect
		}
	}

	tr.typed = append(tr.typed, input)
	text.setState(index, state)

	return Keystroke{Rune: target.Rune, Result: result}
}

// delete moves the position back one character, preserving the prior state
// inside the Deleted variant. Returns false when there is nothing to
// delete, which is a normal no-op rather than an error.
func (tr *tracker) delete(text *Text) (Keystroke, bool) {
	if len(tr.typed) == 0 {
		return Keystroke{}, false
	}
	tr.typed = tr.typed[:len(tr.typed)-1]

	index := len(tr.typed)
	prev := text.chars[index].State

	var state State
	switch prev {
	case StateWrong:
		state = StateWasWrong
	case StateCorrected:
		state = StateWasCorrected
	default:
		state = StateWasCorrect
	}
	text.setState(index, state)

	return Keystroke{Rune: text.chars[index].Rune, Result: ResultDeleted, Prev: prev}, true
}
