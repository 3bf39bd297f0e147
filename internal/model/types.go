// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Lang         string
	Words        int
	CapsPct      float64
	PunctPct     float64
	PunctSet     string
	MeasureEvery float64
	FocusWeak    bool
	WeakTop      int
	WeakFactor   float64
	WeakWindow   int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Lang  string
	Since *time.Time
	Last  int
}

// SessionRecord captures a completed typing session for persistence.
type SessionRecord struct {
	StartedAt    time.Time
	EndedAt      time.Time
	Lang         string
	Words        int
	CapsPct      float64
	PunctPct     float64
	PunctSet     string
	WordListPath string

	Corrects    int
	Errors      int
	Corrections int
	Deletions   int

	WPMRaw      float64
	WPMActual   float64
	AccRaw      float64
	AccActual   float64
	Consistency float64
	DurationMs  int64
}

// MeasurementRecord is one stored statistics snapshot of a session.
type MeasurementRecord struct {
	ElapsedMs   int64
	WPMRaw      float64
	WPMActual   float64
	AccRaw      float64
	AccActual   float64
	Consistency float64
}

// CharStats stores per-character tallies for a session.
type CharStats struct {
	Char    string
	Correct int
	Errors  int
}

// CharAggregate aggregates character tallies across sessions.
type CharAggregate struct {
	Char    string
	Correct int
	Errors  int
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID   int64
	EndedAt     time.Time
	WPMRaw      float64
	WPMActual   float64
	AccRaw      float64
	AccActual   float64
	Consistency float64
	DurationMs  int64
}
