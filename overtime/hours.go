package overtime

import (
	"math"
	"strconv"
	"strings"
)

// parseClock converts an "HH:MM" string to minutes since midnight. The hour
// part is required; a missing or unparseable minute part counts as zero.
func parseClock(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	hourPart, minutePart, _ := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil {
		minute = 0
	}
	return hour*60 + minute, true
}

// Hours computes the fractional duration in hours between two same-day
// "HH:MM" clock values, rounded to two decimals. It returns 0 when either
// input is empty or non-numeric and -1 when end is not strictly after
// start. Overnight shifts are unsupported: an end before the start never
// wraps past midnight.
func Hours(start, end string) float64 {
	startMin, ok := parseClock(start)
	if !ok {
		return 0
	}
	endMin, ok := parseClock(end)
	if !ok {
		return 0
	}
	if endMin <= startMin {
		return -1
	}
	return math.Round(float64(endMin-startMin)/60*100) / 100
}

// EntryHours is the non-negative duration used by every aggregation: the
// sentinel values of Hours collapse to zero.
func EntryHours(start, end string) float64 {
	if h := Hours(start, end); h > 0 {
		return h
	}
	return 0
}
