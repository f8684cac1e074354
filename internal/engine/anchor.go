package engine

import "time"

// HoursSince returns the elapsed hours between anchor and now, clamped
// at zero so a future anchor never yields a negative duration.
func HoursSince(anchor, now time.Time) float64 {
	h := now.Sub(anchor).Hours()
	if h < 0 {
		return 0
	}
	return h
}

// DaysSince returns the number of whole days elapsed since anchor.
func DaysSince(anchor, now time.Time) int {
	return int(HoursSince(anchor, now) / 24)
}
