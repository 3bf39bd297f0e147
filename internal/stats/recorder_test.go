package stats

import (
	"testing"
	"time"
)

func TestRecorderCounters(t *testing.T) {
	r := NewRecorder(time.Second)

	r.Record(EventWrong, 'x', 1, 100*time.Millisecond)
	r.Record(EventCorrect, 'b', 2, 200*time.Millisecond)
	r.Record(EventDeleteWrong, 'x', 1, 300*time.Millisecond)
	r.Record(EventCorrected, 'x', 2, 400*time.Millisecond)
	r.Record(EventDeleteCorrect, 'b', 1, 500*time.Millisecond)

	c := r.Counters()
	if c.Adds != 3 || c.Deletes != 2 || c.Errors != 1 || c.Corrects != 1 || c.Corrections != 1 {
		t.Fatalf("unexpected counters: %+v", c)
	}
	if c.WastedDeletes != 1 {
		t.Fatalf("expected one wasted delete, got %d", c.WastedDeletes)
	}
	if c.CharErrors['x'] != 1 {
		t.Fatalf("expected one error for x, got %d", c.CharErrors['x'])
	}
	if c.CharHits['b'] != 1 || c.CharHits['x'] != 1 {
		t.Fatalf("unexpected char hits: %v", c.CharHits)
	}
	if got := len(r.History()); got != 5 {
		t.Fatalf("expected 5 history events, got %d", got)
	}
}

func TestRecorderCountersAreCopies(t *testing.T) {
	r := NewRecorder(time.Second)
	r.Record(EventWrong, 'q', 1, 100*time.Millisecond)

	c := r.Counters()
	c.CharErrors['q'] = 99
	if r.Counters().CharErrors['q'] != 1 {
		t.Fatalf("counter view must not alias internal state")
	}
}

func TestRecorderMeasurementCadence(t *testing.T) {
	r := NewRecorder(time.Second)

	if _, ok := r.Record(EventCorrect, 'a', 1, 400*time.Millisecond); ok {
		t.Fatalf("expected no measurement before the first interval")
	}
	m, ok := r.Record(EventCorrect, 'b', 2, 1100*time.Millisecond)
	if !ok {
		t.Fatalf("expected a measurement after the interval")
	}
	if m.Elapsed != 1100*time.Millisecond {
		t.Fatalf("unexpected measurement time: %v", m.Elapsed)
	}
	if _, ok := r.Record(EventCorrect, 'c', 3, 1700*time.Millisecond); ok {
		t.Fatalf("expected no measurement inside the second interval")
	}
	if _, ok := r.Record(EventCorrect, 'd', 4, 2200*time.Millisecond); !ok {
		t.Fatalf("expected a measurement in the second interval")
	}
	if got := len(r.Measurements()); got != 2 {
		t.Fatalf("expected 2 measurements, got %d", got)
	}
}

func TestRecorderMeasurementValues(t *testing.T) {
	r := NewRecorder(time.Second)

	// Ten correct characters over ten seconds: 12 raw WPM.
	var m Measurement
	var ok bool
	for i := 1; i <= 10; i++ {
		m, ok = r.Record(EventCorrect, 'a', i, time.Duration(i)*time.Second)
	}
	if !ok {
		t.Fatalf("expected the final record to measure")
	}
	if m.WPM.Raw != 12 {
		t.Fatalf("expected 12 raw wpm, got %f", m.WPM.Raw)
	}
	if m.WPM.Actual != 12 {
		t.Fatalf("expected 12 actual wpm, got %f", m.WPM.Actual)
	}
	if m.Accuracy.Raw != 1 || m.Accuracy.Actual != 1 {
		t.Fatalf("expected perfect accuracy, got %+v", m.Accuracy)
	}
	if m.IPM.Raw != 60 || m.IPM.Actual != 60 {
		t.Fatalf("expected 60 ipm, got %+v", m.IPM)
	}
}

func TestRecorderConsistencySteadyPace(t *testing.T) {
	r := NewRecorder(time.Second)

	// One correct character per second keeps raw WPM constant at 12, so
	// consistency stays perfect.
	for i := 1; i <= 20; i++ {
		r.Record(EventCorrect, 'a', i, time.Duration(i)*time.Second)
	}
	s := r.Finalize(20, 20*time.Second)
	if s.Final.Consistency.RawPercent != 100 {
		t.Fatalf("expected 100%% consistency, got %f", s.Final.Consistency.RawPercent)
	}
	if s.Final.Consistency.RawDeviation != 0 {
		t.Fatalf("expected zero deviation, got %f", s.Final.Consistency.RawDeviation)
	}
}

func TestRecorderFinalize(t *testing.T) {
	r := NewRecorder(time.Second)
	r.Record(EventCorrect, 'h', 1, 300*time.Millisecond)
	r.Record(EventCorrect, 'i', 2, 600*time.Millisecond)

	// Finalize forces a measurement even though no interval has elapsed.
	s := r.Finalize(2, 600*time.Millisecond)
	if len(s.Measurements) != 1 {
		t.Fatalf("expected the final measurement to be stored, got %d", len(s.Measurements))
	}
	if s.Duration != 600*time.Millisecond {
		t.Fatalf("unexpected duration: %v", s.Duration)
	}
	if s.Final.WPM.Raw != 40 {
		t.Fatalf("expected 40 raw wpm, got %f", s.Final.WPM.Raw)
	}
	if s.Counters.Adds != 2 {
		t.Fatalf("unexpected counters: %+v", s.Counters)
	}
}

func TestRecorderDefaultInterval(t *testing.T) {
	r := NewRecorder(0)
	if r.interval != DefaultMeasureInterval {
		t.Fatalf("expected default interval, got %v", r.interval)
	}
}
