package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeriesBasic(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Progress", []Series{
		{Name: "WPM", Values: []float64{10, 20, 30, 40}},
		{Name: "Accuracy", Values: []float64{90, 95, 92, 97}},
	}, 20, 4)
	if err != nil {
		t.Fatalf("PlotSeries() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Progress") {
		t.Errorf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "WPM: min=10.00 max=40.00") {
		t.Errorf("missing WPM range line:\n%s", out)
	}
	if !strings.Contains(out, "Legend: ") {
		t.Errorf("missing legend:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	chartLines := 0
	for _, line := range lines {
		if strings.HasPrefix(line, axisGutter) {
			chartLines++
		}
	}
	if chartLines != 4 {
		t.Errorf("expected 4 chart rows, got %d:\n%s", chartLines, out)
	}
}

func TestPlotSeriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Empty", nil, 20, 4); err != nil {
		t.Fatalf("PlotSeries() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty series, got %q", buf.String())
	}
}

func TestPlotSeriesFlatValues(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "", []Series{{Name: "WPM", Values: []float64{50, 50, 50}}}, 20, 4)
	if err != nil {
		t.Fatalf("PlotSeries() error = %v", err)
	}
	if !strings.Contains(buf.String(), "WPM: min=49.00 max=51.00") {
		t.Errorf("expected expanded range for flat series:\n%s", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 77 {
		t.Errorf("PlotWidthFor(80) = %d, want 77", got)
	}
	if got := PlotWidthFor(5); got != minPlotWidth {
		t.Errorf("PlotWidthFor(5) = %d, want %d", got, minPlotWidth)
	}
}

func TestResample(t *testing.T) {
	down := resample([]float64{1, 2, 3, 4, 5, 6}, 3)
	if len(down) != 3 {
		t.Fatalf("downsample length = %d, want 3", len(down))
	}
	if down[0] != 1.5 || down[1] != 3.5 || down[2] != 5.5 {
		t.Errorf("downsample = %v, want [1.5 3.5 5.5]", down)
	}

	up := resample([]float64{0, 10}, 5)
	if len(up) != 5 {
		t.Fatalf("upsample length = %d, want 5", len(up))
	}
	if up[0] != 0 || up[4] != 10 || up[2] != 5 {
		t.Errorf("upsample = %v, want endpoints 0 and 10 with midpoint 5", up)
	}

	single := resample([]float64{7}, 3)
	for _, v := range single {
		if v != 7 {
			t.Errorf("single-value upsample = %v, want all 7", single)
		}
	}
}
