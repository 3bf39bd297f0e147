package tui

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/keyflow/internal/model"
	"github.com/verte-zerg/keyflow/internal/stats"
)

const worstCharLimit = 5

// renderResults builds the post-session results text shown in the
// scrollable overlay.
func renderResults(summary stats.Summary) string {
	final := summary.Final
	lines := []string{
		fmt.Sprintf("Duration: %.1fs", summary.Duration.Seconds()),
		"",
		fmt.Sprintf("WPM raw: %.1f  corrected: %.1f  actual: %.1f",
			final.WPM.Raw, final.WPM.Corrected, final.WPM.Actual),
		fmt.Sprintf("IPM raw: %.1f  actual: %.1f", final.IPM.Raw, final.IPM.Actual),
		fmt.Sprintf("Accuracy raw: %.1f%%  actual: %.1f%%",
			final.Accuracy.Raw*100, final.Accuracy.Actual*100),
		fmt.Sprintf("Consistency: %.1f%% (deviation %.2f WPM)",
			final.Consistency.ActualPercent, final.Consistency.ActualDeviation),
		"",
		fmt.Sprintf("Keystrokes: %d typed, %d deleted",
			summary.Counters.Adds, summary.Counters.Deletes),
		fmt.Sprintf("Errors: %d  corrections: %d  wasted deletes: %d",
			summary.Counters.Errors, summary.Counters.Corrections, summary.Counters.WastedDeletes),
	}

	if spark := wpmSparkline(summary.Measurements); spark != "" {
		lines = append(lines, "", "WPM over time: "+spark)
	}

	if worst := renderWorstChars(summary.Counters); worst != "" {
		lines = append(lines, "", worst)
	}
	return strings.Join(lines, "\n")
}

func wpmSparkline(measurements []stats.Measurement) string {
	if len(measurements) < 2 {
		return ""
	}
	values := make([]float64, len(measurements))
	for i, m := range measurements {
		values[i] = m.WPM.Actual
	}
	return stats.Sparkline(values)
}

func renderWorstChars(counters stats.Counters) string {
	if len(counters.CharErrors) == 0 {
		return ""
	}
	aggs := make([]model.CharAggregate, 0, len(counters.CharErrors))
	for ch, errs := range counters.CharErrors {
		aggs = append(aggs, model.CharAggregate{
			Char:    string(ch),
			Correct: counters.CharHits[ch],
			Errors:  errs,
		})
	}
	sort.Slice(aggs, func(i, j int) bool {
		return aggs[i].Char < aggs[j].Char
	})
	var buf bytes.Buffer
	if err := stats.RenderCharTable(&buf, aggs, worstCharLimit); err != nil {
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}
