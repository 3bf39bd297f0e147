package session

import (
	"time"

	"github.com/verte-zerg/keyflow/internal/stats"
)

// Option configures a Session.
type Option func(*Session)

// WithMeasureInterval sets the cadence at which statistics measurements
// are taken.
func WithMeasureInterval(interval time.Duration) Option {
	return func(s *Session) {
		s.interval = interval
	}
}

// Session coordinates one typing run: it owns the text model, the input
// tracker, and the statistics recorder, and is the single entry point for
// the surrounding application. A Session must not be shared across
// goroutines; timing is injected by the caller as elapsed durations, so
// the session itself never reads a clock.
type Session struct {
	text     *Text
	tracker  tracker
	recorder *stats.Recorder
	interval time.Duration
}

// New builds a session for the given target text.
func New(target string, opts ...Option) (*Session, error) {
	text, err := NewText(target)
	if err != nil {
		return nil, err
	}
	s := &Session{text: text}
	for _, opt := range opts {
		opt(s)
	}
	s.recorder = stats.NewRecorder(s.interval)
	return s, nil
}

// Text returns the text model for read-only rendering.
func (s *Session) Text() *Text {
	return s.text
}

// Pos returns the current input position: the index of the next character
// to be judged.
func (s *Session) Pos() int {
	return s.tracker.pos()
}

// Done reports whether every character has been judged.
func (s *Session) Done() bool {
	return s.tracker.fullyTyped(s.text.Len())
}

// Progress returns the fraction of characters judged so far. It decreases
// across deletions, which is expected.
func (s *Session) Progress() float64 {
	return float64(s.tracker.pos()) / float64(s.text.Len())
}

// Input judges one typed character at the current position, records it,
// and returns the outcome. Returns ErrOutOfBounds when the text is already
// fully typed; the caller should have stopped on Done.
func (s *Session) Input(r rune, elapsed time.Duration) (Keystroke, error) {
	if s.Done() {
		return Keystroke{}, ErrOutOfBounds
	}
	ks := s.tracker.add(r, s.text)
	s.recorder.Record(eventFor(ks), ks.Rune, s.tracker.pos(), elapsed)
	return ks, nil
}

// Delete removes the last typed character. Deleting with an empty input is
// a normal no-op and returns false.
func (s *Session) Delete(elapsed time.Duration) (Keystroke, bool) {
	ks, ok := s.tracker.delete(s.text)
	if !ok {
		return Keystroke{}, false
	}
	s.recorder.Record(eventFor(ks), ks.Rune, s.tracker.pos(), elapsed)
	return ks, true
}

// Poll represents "no key this tick": it takes a measurement if one is due
// without mutating any input state.
func (s *Session) Poll(elapsed time.Duration) (stats.Measurement, bool) {
	return s.recorder.MaybeMeasure(s.tracker.pos(), elapsed)
}

// Counters returns a copy of the running statistics counters.
func (s *Session) Counters() stats.Counters {
	return s.recorder.Counters()
}

// Measurements returns a copy of the measurement history so far.
func (s *Session) Measurements() []stats.Measurement {
	return s.recorder.Measurements()
}

// Finalize forces a final measurement and returns the session summary.
func (s *Session) Finalize(elapsed time.Duration) stats.Summary {
	return s.recorder.Finalize(s.tracker.pos(), elapsed)
}

// eventFor maps a keystroke outcome to its statistics event. Deleting a
// character that stood correct is a wasted delete; the prior state is
// preserved so lifetime counters keep attributing the original error.
func eventFor(ks Keystroke) stats.EventKind {
	switch ks.Result {
	case ResultCorrect:
		return stats.EventCorrect
	case ResultCorrected:
		return stats.EventCorrected
	case ResultWrong:
		return stats.EventWrong
	default:
		if ks.Prev == StateCorrect || ks.Prev == StateCorrected {
			return stats.EventDeleteCorrect
		}
		return stats.EventDeleteWrong
	}
}
