package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/keyflow/internal/stats"
)

func TestRenderResults(t *testing.T) {
	summary := stats.Summary{
		Final: stats.Measurement{
			Elapsed:     30 * time.Second,
			WPM:         stats.WPM{Raw: 50, Corrected: 48, Actual: 46},
			IPM:         stats.IPM{Raw: 260, Actual: 250},
			Accuracy:    stats.Accuracy{Raw: 0.92, Actual: 0.96},
			Consistency: stats.Consistency{ActualPercent: 81.5, ActualDeviation: 4.2},
		},
		Duration: 30 * time.Second,
		Counters: stats.Counters{
			Adds:          125,
			Deletes:       8,
			Errors:        10,
			Corrections:   6,
			WastedDeletes: 2,
			CharErrors:    map[rune]int{'e': 4, 't': 6},
			CharHits:      map[rune]int{'e': 20, 't': 10, 'a': 30},
		},
		Measurements: []stats.Measurement{
			{WPM: stats.WPM{Actual: 40}},
			{WPM: stats.WPM{Actual: 50}},
		},
	}
	out := renderResults(summary)
	for _, want := range []string{
		"Duration: 30.0s",
		"WPM raw: 50.0  corrected: 48.0  actual: 46.0",
		"IPM raw: 260.0  actual: 250.0",
		"Accuracy raw: 92.0%  actual: 96.0%",
		"Consistency: 81.5%",
		"Keystrokes: 125 typed, 8 deleted",
		"Errors: 10  corrections: 6  wasted deletes: 2",
		"WPM over time: ",
		"Per-Character",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("results missing %q:\n%s", want, out)
		}
	}
}

func TestRenderResultsNoErrors(t *testing.T) {
	summary := stats.Summary{
		Duration: 10 * time.Second,
		Counters: stats.Counters{Adds: 20, CharHits: map[rune]int{'a': 20}},
	}
	out := renderResults(summary)
	if strings.Contains(out, "Per-Character") {
		t.Errorf("did not expect a character table without errors:\n%s", out)
	}
	if strings.Contains(out, "WPM over time") {
		t.Errorf("did not expect sparkline with fewer than 2 measurements:\n%s", out)
	}
}
