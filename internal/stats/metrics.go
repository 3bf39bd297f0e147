// Package stats contains statistics calculations and recording for typing
// sessions.
package stats

import "math"

// AverageWordLength is the fixed character width of one "word" for
// words-per-minute purposes, the industry standard for typing trainers.
const AverageWordLength = 5

// WPM holds words-per-minute figures.
type WPM struct {
	// Raw is pure typing speed: every attempted character counts,
	// including ones later corrected or deleted.
	Raw float64
	// Corrected is raw speed minus errors per minute.
	Corrected float64
	// Actual is raw speed minus both errors and corrections per minute,
	// clamped at zero.
	Actual float64
}

// CalculateWPM computes speed figures from running counters.
//
// attempted is the total number of characters ever typed (not counting
// delete keypresses), errors and corrections the lifetime tallies, minutes
// the elapsed session time.
func CalculateWPM(attempted, errors, corrections int, minutes float64) WPM {
	if minutes <= 0 {
		return WPM{}
	}
	raw := (float64(attempted) / AverageWordLength) / minutes
	epm := float64(errors) / minutes
	cepm := float64(errors+corrections) / minutes
	return WPM{
		Raw:       raw,
		Corrected: raw - epm,
		Actual:    math.Max(raw-cepm, 0),
	}
}

// IPM holds inputs-per-minute figures.
type IPM struct {
	// Raw counts every keystroke including deletions and retypes.
	Raw float64
	// Actual counts only characters added to the input.
	Actual float64
}

// CalculateIPM computes input rates. added is the number of characters
// typed, keystrokes the total including deletions.
func CalculateIPM(added, keystrokes int, minutes float64) IPM {
	if minutes <= 0 {
		return IPM{}
	}
	return IPM{
		Raw:    float64(keystrokes) / minutes,
		Actual: float64(added) / minutes,
	}
}

// Accuracy holds accuracy fractions in [0, 1].
type Accuracy struct {
	// Raw counts every error ever made against the standing input.
	Raw float64
	// Actual forgives errors that have since been corrected.
	Actual float64
}

// CalculateAccuracy computes accuracy from the standing input length and
// lifetime error/correction tallies. An empty input is perfectly accurate.
func CalculateAccuracy(inputLen, errors, corrections int) Accuracy {
	if inputLen <= 0 {
		return Accuracy{Raw: 1, Actual: 1}
	}
	standing := math.Max(float64(errors-corrections), 0)
	return Accuracy{
		Raw:    1 - float64(errors)/float64(inputLen),
		Actual: 1 - standing/float64(inputLen),
	}
}

// Consistency describes the stability of speed over the session: the
// population standard deviation of the speed samples taken so far, and a
// percentage derived from the coefficient of variation where 100 means
// perfectly even pacing.
type Consistency struct {
	RawDeviation       float64
	RawPercent         float64
	CorrectedDeviation float64
	CorrectedPercent   float64
	ActualDeviation    float64
	ActualPercent      float64
}

// welford accumulates mean and variance online. One pass, O(1) per sample,
// numerically stable where the naive sum-of-squares formula is not.
type welford struct {
	n    int
	mean float64
	m2   float64
}

func (w *welford) push(x float64) {
	w.n++
	delta := x - w.mean
	w.mean += delta / float64(w.n)
	w.m2 += delta * (x - w.mean)
}

// stdDev returns the population standard deviation of the samples so far.
func (w *welford) stdDev() float64 {
	if w.n <= 1 {
		return 0
	}
	return math.Sqrt(w.m2 / float64(w.n))
}

// cvPercent converts a deviation/mean pair into a consistency percentage.
// A zero mean means no typing happened, which counts as perfectly
// consistent; a coefficient of variation at or above 1 floors at zero.
func cvPercent(dev, mean float64) float64 {
	if mean == 0 {
		return 100
	}
	cv := dev / mean
	return math.Max((1-math.Min(cv, 1))*100, 0)
}
