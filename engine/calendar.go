package engine

import "time"

// epochYear anchors the simulation calendar. It is arbitrary but fixed:
// results must never depend on the wall clock, only on Gregorian day counts
// relative to this epoch. 2020 is a leap year, so a 30-year run crosses
// eight 29-day Februaries.
const epochYear = 2020

// monthCursor walks calendar months from the epoch one at a time. It carries
// no date semantics beyond day-count lookups.
type monthCursor struct {
	elapsed int // whole months since the epoch
}

// daysInMonth returns the length of the cursor's current month.
func (c *monthCursor) daysInMonth() int {
	year := epochYear + c.elapsed/12
	month := time.Month(c.elapsed%12 + 1)
	// Day zero of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (c *monthCursor) advance() {
	c.elapsed++
}
