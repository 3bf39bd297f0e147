// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keyflow/internal/session"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes renders each target character according to its judged
// state. Characters at or past the cursor render as pending regardless of
// any earlier deleted state, with the word under the cursor highlighted.
func buildStyledRunes(text *session.Text, cursor int) []styledRune {
	currentWord, haveWord := wordForCursor(text, cursor)

	out := make([]styledRune, 0, text.Len())
	for i := 0; i < text.Len(); i++ {
		ch, _ := text.CharAt(i)
		displayed := ch.Rune
		isSpace := displayed == ' '

		var style = pendingStyle
		if i < cursor {
			switch ch.State {
			case session.StateWrong:
				style = incorrectStyle
				if isSpace {
					displayed = '•'
				}
			case session.StateCorrected:
				style = correctedStyle
			default:
				style = correctStyle
			}
		} else if !isSpace && haveWord && currentWord.Contains(i) {
			style = currentWordStyle
		}
		if i == cursor {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: isSpace,
		})
	}
	return out
}

// wordForCursor returns the word to highlight: the word under the cursor,
// or the next word when the cursor sits on whitespace.
func wordForCursor(text *session.Text, cursor int) (session.Word, bool) {
	if cursor < 0 {
		cursor = 0
	}
	for i := cursor; i < text.Len(); i++ {
		if w, ok := text.WordContaining(i); ok {
			return w, true
		}
	}
	return session.Word{}, false
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks the styled sequence into lines no wider than
// width, preferring to break at spaces.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
