package overtime

import "mesai/models"

// Overlaps reports whether the [start,end) interval on date intersects any
// active candidate on the same date. Rejected candidates never block a new
// interval; excludeID skips an entry being edited against itself. Intervals
// are half-open: [a,b) and [c,d) overlap iff a < d && b > c. Times are
// compared as minute-of-day integers.
func Overlaps(date, start, end string, candidates []models.OvertimeEntry, excludeID string) bool {
	newStart, ok := parseClock(start)
	if !ok {
		return false
	}
	newEnd, ok := parseClock(end)
	if !ok {
		return false
	}
	for i := range candidates {
		c := &candidates[i]
		if c.ID == excludeID {
			continue
		}
		if c.Date != date {
			continue
		}
		if !c.Active() {
			continue
		}
		existStart, ok := parseClock(c.Start)
		if !ok {
			continue
		}
		existEnd, ok := parseClock(c.End)
		if !ok {
			continue
		}
		if newStart < existEnd && newEnd > existStart {
			return true
		}
	}
	return false
}
