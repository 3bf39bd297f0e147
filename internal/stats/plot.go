package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Series is a named sequence of values for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight = 8
	minPlotWidth      = 16
	fallbackTermWidth = 80
	axisGutter        = " | "
	colorReset        = "\x1b[0m"
)

var plotColors = []string{
	"\x1b[36m", // cyan
	"\x1b[35m", // magenta
	"\x1b[33m", // yellow
	"\x1b[32m", // green
}

type seriesRange struct {
	min float64
	max float64
}

// PlotSeries renders the series as a braille line chart. Each series is
// scaled to its own min/max, listed below the chart.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	keep := series[:0:0]
	for _, s := range series {
		if len(s.Values) > 0 {
			keep = append(keep, s)
		}
	}
	if len(keep) == 0 {
		return nil
	}

	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	ranges := make([]seriesRange, len(keep))
	resampled := make([][]float64, len(keep))
	for i, s := range keep {
		resampled[i] = resample(s.Values, width)
		lo, hi := minMax(resampled[i])
		if math.Abs(hi-lo) < 1e-9 {
			lo--
			hi++
		}
		ranges[i] = seriesRange{min: lo, max: hi}
	}

	// Cell grid of braille dot masks plus the series index that owns them.
	masks := make([][]uint8, height)
	owners := make([][]int, height)
	for y := range masks {
		masks[y] = make([]uint8, width)
		owners[y] = make([]int, width)
		for x := range owners[y] {
			owners[y][x] = -1
		}
	}

	dotRows := height * 4
	for si, values := range resampled {
		prevX, prevY := -1, -1
		for x, v := range values {
			pos := (v - ranges[si].min) / (ranges[si].max - ranges[si].min)
			dy := int(math.Round((1 - pos) * float64(dotRows-1)))
			if dy < 0 {
				dy = 0
			}
			if dy >= dotRows {
				dy = dotRows - 1
			}
			dx := x * 2
			if prevX >= 0 {
				traceLine(prevX, prevY, dx, dy, func(px, py int) {
					setDot(masks, owners, si, px, py)
				})
			} else {
				setDot(masks, owners, si, dx, dy)
			}
			prevX, prevY = dx, dy
		}
	}

	useColor := colorEnabled(w)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for i, s := range keep {
		if _, err := fmt.Fprintf(w, "%s: min=%.2f max=%.2f\n", s.Name, ranges[i].min, ranges[i].max); err != nil {
			return err
		}
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(axisGutter)
		for x := 0; x < width; x++ {
			ch := rune(0x2800 + int(masks[y][x]))
			if useColor && owners[y][x] >= 0 {
				row.WriteString(plotColors[owners[y][x]%len(plotColors)])
				row.WriteRune(ch)
				row.WriteString(colorReset)
			} else {
				row.WriteRune(ch)
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	legend := make([]string, 0, len(keep))
	for i, s := range keep {
		label := fmt.Sprintf("%c %s", rune(0x2800+0x07), s.Name)
		if useColor {
			label = plotColors[i%len(plotColors)] + label + colorReset
		}
		legend = append(legend, label)
	}
	if _, err := fmt.Fprintln(w, "Legend: "+strings.Join(legend, "  ")); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// PlotWidthFor computes the chart width that fits a terminal of totalWidth.
func PlotWidthFor(totalWidth int) int {
	w := totalWidth - runewidth.StringWidth(axisGutter)
	if w < minPlotWidth {
		return minPlotWidth
	}
	return w
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func minMax(values []float64) (float64, float64) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if math.IsInf(lo, 1) {
		lo = 0
	}
	if math.IsInf(hi, -1) {
		hi = 0
	}
	return lo, hi
}

// resample stretches or averages values to exactly width points.
func resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	if len(values) >= width {
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
		return out
	}
	if len(values) == 1 || width == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	for i := 0; i < width; i++ {
		pos := float64(i) * float64(len(values)-1) / float64(width-1)
		idx := int(pos)
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

func setDot(masks [][]uint8, owners [][]int, si, x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cy := y / 4
	cx := x / 2
	if cy >= len(masks) || cx >= len(masks[cy]) {
		return
	}
	masks[cy][cx] |= brailleDot(x%2, y%4)
	if owners[cy][cx] == -1 {
		owners[cy][cx] = si
	}
}

func brailleDot(x, y int) uint8 {
	left := [4]uint8{0x01, 0x02, 0x04, 0x40}
	right := [4]uint8{0x08, 0x10, 0x20, 0x80}
	if x == 0 {
		return left[y]
	}
	return right[y]
}

func traceLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := y1 - y0
	if dy > 0 {
		dy = -dy
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			err += dx
			y0 += sy
		}
	}
}
