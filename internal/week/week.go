// Package week converts date ranges into the Monday-anchored week grid the
// allocation tables are keyed by.
package week

import "time"

// DateLayout is the wire format for all calendar dates handled by the planner.
const DateLayout = "2006-01-02"

// Truncate drops the time-of-day component, returning midnight UTC of the same
// calendar date. Every date persisted by the planner goes through this first so
// that range comparisons behave identically across storage drivers.
func Truncate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// MondayOf returns the Monday of the ISO week containing d, at midnight UTC.
func MondayOf(d time.Time) time.Time {
	d = Truncate(d)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0 ... Sunday = 6
	return d.AddDate(0, 0, -offset)
}

// Mondays returns the ordered Monday anchors of every calendar week the
// inclusive range [start, end] touches, including partial weeks at both ends.
// A single-day range yields exactly one anchor. Returns nil if end precedes
// start; callers are expected to have validated the range.
func Mondays(start, end time.Time) []time.Time {
	start, end = Truncate(start), Truncate(end)
	if end.Before(start) {
		return nil
	}

	var anchors []time.Time
	for m := MondayOf(start); !m.After(end); m = m.AddDate(0, 0, 7) {
		anchors = append(anchors, m)
	}
	return anchors
}
