package models

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// TimeWindow is a half-open [Start, End) slot on one calendar day.
// Start and End are minutes from midnight.
type TimeWindow struct {
	Date  string
	Start int
	End   int
}

// ParseClock converts an "HH:MM" wall-clock string to minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %v", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight back to "HH:MM".
func FormatClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseWindow validates the wire strings and builds a TimeWindow. The date is
// normalized to DateLayout so lookups key on a canonical form. Start must be
// strictly before end, so zero-length and inverted ranges never reach the
// overlap test.
func ParseWindow(date, start, end string) (TimeWindow, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return TimeWindow{}, ErrInvalidTimeRange
	}
	s, err := ParseClock(start)
	if err != nil {
		return TimeWindow{}, ErrInvalidTimeRange
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeWindow{}, ErrInvalidTimeRange
	}
	if s >= e {
		return TimeWindow{}, ErrInvalidTimeRange
	}
	return TimeWindow{Date: d.Format(DateLayout), Start: s, End: e}, nil
}

// Overlaps reports whether two windows share any instant. Windows on
// different days never overlap. On the same day the half-open intervals
// conflict iff each starts before the other ends; a slot that ends exactly
// when the next starts is compatible with it.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	if w.Date != other.Date {
		return false
	}
	return w.Start < other.End && other.Start < w.End
}

// Duration returns the window length in minutes.
func (w TimeWindow) Duration() int {
	return w.End - w.Start
}
