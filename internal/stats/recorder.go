package stats

import "time"

// DefaultMeasureInterval is the cadence at which measurements are taken
// when the caller does not configure one.
const DefaultMeasureInterval = time.Second

// EventKind classifies one keystroke event for recording.
type EventKind int

const (
	// EventCorrect is a correctly typed character.
	EventCorrect EventKind = iota
	// EventCorrected is a correct retype of a previously wrong position.
	EventCorrected
	// EventWrong is an incorrectly typed character.
	EventWrong
	// EventDeleteWrong is the deletion of a wrong character.
	EventDeleteWrong
	// EventDeleteCorrect is the deletion of a correct or corrected
	// character, a wasted keystroke.
	EventDeleteCorrect
)

// Event is one recorded keystroke with its elapsed-time stamp. Char is the
// target character at the affected position.
type Event struct {
	Elapsed time.Duration
	Char    rune
	Kind    EventKind
}

// Counters are the session-scoped running tallies. Raw counters are
// cumulative over the whole session and never decrease on deletion.
type Counters struct {
	// Adds counts characters typed, excluding delete keypresses.
	Adds int
	// Deletes counts delete keypresses.
	Deletes int
	// Corrects counts first-try correct characters.
	Corrects int
	// Corrections counts wrong positions later retyped correctly.
	Corrections int
	// Errors counts wrong characters typed.
	Errors int
	// WastedDeletes counts deletions of characters that were correct.
	WastedDeletes int
	// CharErrors tallies errors by target character.
	CharErrors map[rune]int
	// CharHits tallies correct keystrokes by target character.
	CharHits map[rune]int
}

func newCounters() Counters {
	return Counters{
		CharErrors: map[rune]int{},
		CharHits:   map[rune]int{},
	}
}

func (c Counters) clone() Counters {
	out := c
	out.CharErrors = make(map[rune]int, len(c.CharErrors))
	for k, v := range c.CharErrors {
		out.CharErrors[k] = v
	}
	out.CharHits = make(map[rune]int, len(c.CharHits))
	for k, v := range c.CharHits {
		out.CharHits[k] = v
	}
	return out
}

// Measurement is an immutable snapshot of all metrics at a point in
// elapsed time. Consistency covers the speed samples up to and including
// this one.
type Measurement struct {
	Elapsed     time.Duration
	WPM         WPM
	IPM         IPM
	Accuracy    Accuracy
	Consistency Consistency
}

// Summary is the finalized result of a session.
type Summary struct {
	Final        Measurement
	Duration     time.Duration
	Counters     Counters
	Measurements []Measurement
}

// Recorder converts a stream of keystroke events into running counters and
// periodic measurements. All per-measurement math runs against the
// counters in O(1); consistency is maintained by online Welford
// accumulators so no sample history is rescanned.
type Recorder struct {
	interval     time.Duration
	counters     Counters
	history      []Event
	measurements []Measurement
	lastMeasure  time.Duration
	measured     bool

	raw       welford
	corrected welford
	actual    welford
}

// NewRecorder creates a recorder taking measurements at the given
// interval. A non-positive interval selects DefaultMeasureInterval.
func NewRecorder(interval time.Duration) *Recorder {
	if interval <= 0 {
		interval = DefaultMeasureInterval
	}
	return &Recorder{
		interval: interval,
		counters: newCounters(),
	}
}

// Record applies one keystroke event, updating counters and history, and
// takes a measurement when the cadence is due. inputLen is the standing
// input length after the event.
func (r *Recorder) Record(kind EventKind, char rune, inputLen int, elapsed time.Duration) (Measurement, bool) {
	switch kind {
	case EventCorrect:
		r.counters.Adds++
		r.counters.Corrects++
		r.counters.CharHits[char]++
	case EventCorrected:
		r.counters.Adds++
		r.counters.Corrections++
		r.counters.CharHits[char]++
	case EventWrong:
		r.counters.Adds++
		r.counters.Errors++
		r.counters.CharErrors[char]++
	case EventDeleteWrong:
		r.counters.Deletes++
	case EventDeleteCorrect:
		r.counters.Deletes++
		r.counters.WastedDeletes++
	}
	r.history = append(r.history, Event{Elapsed: elapsed, Char: char, Kind: kind})

	return r.MaybeMeasure(inputLen, elapsed)
}

// MaybeMeasure takes a measurement if at least one interval has passed
// since the previous one. It has no side effects between intervals, so it
// is safe to call on every tick.
func (r *Recorder) MaybeMeasure(inputLen int, elapsed time.Duration) (Measurement, bool) {
	if r.measured {
		if elapsed-r.lastMeasure < r.interval {
			return Measurement{}, false
		}
	} else if elapsed < r.interval {
		return Measurement{}, false
	}
	return r.measure(inputLen, elapsed), true
}

// Finalize forces a last measurement regardless of cadence and returns the
// full session summary.
func (r *Recorder) Finalize(inputLen int, elapsed time.Duration) Summary {
	final := r.measure(inputLen, elapsed)
	return Summary{
		Final:        final,
		Duration:     elapsed,
		Counters:     r.counters.clone(),
		Measurements: r.Measurements(),
	}
}

func (r *Recorder) measure(inputLen int, elapsed time.Duration) Measurement {
	minutes := elapsed.Minutes()

	wpm := CalculateWPM(r.counters.Adds, r.counters.Errors, r.counters.Corrections, minutes)
	ipm := CalculateIPM(r.counters.Adds, len(r.history), minutes)
	acc := CalculateAccuracy(inputLen, r.counters.Errors, r.counters.Corrections)

	r.raw.push(wpm.Raw)
	r.corrected.push(wpm.Corrected)
	r.actual.push(wpm.Actual)
	consistency := Consistency{
		RawDeviation:       r.raw.stdDev(),
		RawPercent:         cvPercent(r.raw.stdDev(), r.raw.mean),
		CorrectedDeviation: r.corrected.stdDev(),
		CorrectedPercent:   cvPercent(r.corrected.stdDev(), r.corrected.mean),
		ActualDeviation:    r.actual.stdDev(),
		ActualPercent:      cvPercent(r.actual.stdDev(), r.actual.mean),
	}

	m := Measurement{
		Elapsed:     elapsed,
		WPM:         wpm,
		IPM:         ipm,
		Accuracy:    acc,
		Consistency: consistency,
	}
	r.measurements = append(r.measurements, m)
	r.lastMeasure = elapsed
	r.measured = true
	return m
}

// Counters returns a copy of the running counters.
func (r *Recorder) Counters() Counters {
	return r.counters.clone()
}

// Measurements returns a copy of the measurement history.
func (r *Recorder) Measurements() []Measurement {
	out := make([]Measurement, len(r.measurements))
	copy(out, r.measurements)
	return out
}

// History returns a copy of the recorded keystroke events.
func (r *Recorder) History() []Event {
	out := make([]Event, len(r.history))
	copy(out, r.history)
	return out
}
