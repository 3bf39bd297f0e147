package stats

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/keyflow/internal/model"
	"github.com/verte-zerg/keyflow/internal/store"
)

const sparkChars = " .:-=+*#%@"

// Report holds precomputed data for stats rendering.
type Report struct {
	Sessions []model.SessionAggregate
	CharAggs []model.CharAggregate
}

// BuildReport loads session and character aggregates for rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	charAggs, err := st.ListCharAggregatesForSessions(ctx, ids)
	if err != nil {
		return Report{}, err
	}
	return Report{Sessions: sessions, CharAggs: charAggs}, nil
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		n := i + 1
		if i >= window {
			sum -= values[i-window]
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := minMax(values)
	if math.Abs(hi-lo) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - lo) / (hi - lo)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints aggregate numbers over the sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var sumRaw, sumActual, sumAccRaw, sumAccActual, sumCons float64
	var totalMs int64
	bestActual := 0.0
	for _, s := range sessions {
		sumRaw += s.WPMRaw
		sumActual += s.WPMActual
		sumAccRaw += s.AccRaw
		sumAccActual += s.AccActual
		sumCons += s.Consistency
		totalMs += s.DurationMs
		if s.WPMActual > bestActual {
			bestActual = s.WPMActual
		}
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Time typed: %.1f min", float64(totalMs)/60000.0),
		fmt.Sprintf("Avg WPM (raw): %.2f", sumRaw/count),
		fmt.Sprintf("Avg WPM (actual): %.2f", sumActual/count),
		fmt.Sprintf("Best WPM (actual): %.2f", bestActual),
		fmt.Sprintf("Avg accuracy (raw): %.2f%%", sumAccRaw/count*100),
		fmt.Sprintf("Avg accuracy (actual): %.2f%%", sumAccActual/count*100),
		fmt.Sprintf("Avg consistency: %.1f%%", sumCons/count),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrend prints WPM and accuracy curves across sessions.
func RenderTrend(w io.Writer, sessions []model.SessionAggregate, window, totalWidth, height int) error {
	if len(sessions) == 0 {
		return nil
	}
	wpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		wpms[i] = s.WPMActual
		accs[i] = s.AccActual * 100
	}
	wpms = MovingAverage(wpms, window)
	accs = MovingAverage(accs, window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeries(w, "Progress", []Series{
		{Name: "WPM (actual)", Values: wpms},
		{Name: "Accuracy (actual)", Values: accs},
	}, width, height)
}

// RenderCharTable prints per-character aggregates, worst accuracy first.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate, limit int) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	sorted := make([]model.CharAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool {
		ai := charAccuracy(sorted[i])
		aj := charAccuracy(sorted[j])
		if ai == aj {
			return sorted[i].Char < sorted[j].Char
		}
		return ai < aj
	})
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}

	if _, err := fmt.Fprintln(w, "Per-Character"); err != nil {
		return err
	}
	headers := []string{"Char", "Accuracy", "Correct", "Errors"}
	rows := make([][]string, 0, len(sorted))
	for _, agg := range sorted {
		label := agg.Char
		if label == " " {
			label = "<space>"
		}
		rows = append(rows, []string{
			label,
			fmt.Sprintf("%.2f%%", charAccuracy(agg)*100),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Errors),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func charAccuracy(agg model.CharAggregate) float64 {
	total := agg.Correct + agg.Errors
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}
