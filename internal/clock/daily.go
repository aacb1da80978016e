package clock

import "time"

// NextDailyRun returns the first instant strictly after now that falls on
// hour:00 UTC. Hours outside 0..23 are wrapped.
func NextDailyRun(now time.Time, hour int) time.Time {
	hour = ((hour % 24) + 24) % 24
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// DailyWindow returns the 24 hour window (start, end] that closes at end.
func DailyWindow(end time.Time) (time.Time, time.Time) {
	end = end.UTC()
	return end.Add(-24 * time.Hour), end
}
