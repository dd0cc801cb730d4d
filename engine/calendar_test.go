package engine

import "testing"

func TestMonthCursor_DayCounts_FirstYear(t *testing.T) {
	// GIVEN: a cursor at the epoch (a leap year)
	// WHEN: reading day counts for the first twelve months
	// THEN: February has 29 days and the rest match the Gregorian calendar

	want := []int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	cursor := monthCursor{}
	for i, expected := range want {
		if got := cursor.daysInMonth(); got != expected {
			t.Errorf("month %d: expected %d days, got %d", i, expected, got)
		}
		cursor.advance()
	}
}

func TestMonthCursor_LeapYearCycle(t *testing.T) {
	// GIVEN: a cursor advanced into the year after the epoch
	// WHEN: reading February's day count
	// THEN: it is 28 (plain year), and four years after the epoch it is 29 again

	cursor := monthCursor{elapsed: 13} // February, epoch+1
	if got := cursor.daysInMonth(); got != 28 {
		t.Errorf("expected 28 days in plain-year February, got %d", got)
	}

	cursor = monthCursor{elapsed: 4*12 + 1} // February, epoch+4
	if got := cursor.daysInMonth(); got != 29 {
		t.Errorf("expected 29 days in leap-year February, got %d", got)
	}
}

func TestMonthCursor_Determinism(t *testing.T) {
	// Two independent cursors walked the same distance must agree: the
	// calendar is anchored to a fixed epoch, never the wall clock.
	a := monthCursor{}
	b := monthCursor{}
	for i := 0; i < 400; i++ {
		if a.daysInMonth() != b.daysInMonth() {
			t.Fatalf("cursors diverged at month %d", i)
		}
		a.advance()
		b.advance()
	}
}
