/*
calendar.go - Yearly day-status grid

PURPOSE:
  Holds exactly twelve months of per-day statuses for the active year,
  plus the "displayed month" cursor the kiosk is currently showing.
  Implements the three state-changing policies:

  - RecordDayStatus: advance one day through the status cycle
  - AutoFillPastDays: the 16:00 "attendance defaults to normal" rule
  - cursor auto-advance when the displayed month completes

COMPLETION vs NAVIGATION:
  A month's Completed flag is a pure derivation (every day non-unset).
  Moving the cursor to the next month when the displayed month completes
  is a separate navigation policy (maybeAdvanceCursor) so the derivation
  stays testable on its own.

EDGE CASES:
  Reads against a month index that has no data return zero values, never
  errors; statistics and streak treat a missing month as zero days.
*/
package board

import "time"

// AutoFillHour is the local hour at or after which today's still-unset
// day is auto-filled to normal. Earlier days are filled regardless.
const AutoFillHour = 16

// DailyStatistic is one day of one month. The day number is fixed at
// construction; only the status changes.
type DailyStatistic struct {
	Day    int       `json:"day"`
	Status DayStatus `json:"status"`
}

// MonthlyData is the recorded grid for a single month.
type MonthlyData struct {
	Month     int              `json:"month"` // 0..11
	Year      int              `json:"year"`
	Completed bool             `json:"completed"`
	Days      []DailyStatistic `json:"days"`
}

// NormalDays counts days recorded as normal, for the year overview tiles.
func (m MonthlyData) NormalDays() int {
	n := 0
	for _, d := range m.Days {
		if d.Status == StatusNormal {
			n++
		}
	}
	return n
}

// recordedDays counts days with any non-unset status.
func (m MonthlyData) recordedDays() int {
	n := 0
	for _, d := range m.Days {
		if d.Status != StatusUnset {
			n++
		}
	}
	return n
}

// allRecorded reports whether every day has a non-unset status.
func (m MonthlyData) allRecorded() bool {
	for _, d := range m.Days {
		if d.Status == StatusUnset {
			return false
		}
	}
	return len(m.Days) > 0
}

// DaysInMonth returns the Gregorian day count for a (year, month index)
// pair, month index 0..11. Leap years fall out of time.Date
// normalization: day zero of the following month is the last day of the
// requested one.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// Calendar is the twelve-month grid plus the displayed-month cursor.
// It is not safe for concurrent use on its own; Board serializes access.
type Calendar struct {
	year         int
	displayMonth int
	months       []MonthlyData
}

// NewCalendar builds an all-unset grid for the given year, with the
// cursor on the given month.
func NewCalendar(year, displayMonth int) *Calendar {
	c := &Calendar{}
	c.SetYear(year)
	c.SetDisplayedMonth(displayMonth)
	return c
}

// SetYear activates the given year. If the existing grid already belongs
// to that year it is kept untouched; otherwise all twelve months are
// rebuilt with every day unset. Guarantees exactly 12 months with
// Gregorian-correct day counts afterward.
func (c *Calendar) SetYear(year int) {
	if len(c.months) == 12 && c.months[0].Year == year {
		c.year = year
		return
	}
	months := make([]MonthlyData, 12)
	for m := 0; m < 12; m++ {
		n := DaysInMonth(year, m)
		days := make([]DailyStatistic, n)
		for d := range days {
			days[d] = DailyStatistic{Day: d + 1, Status: StatusUnset}
		}
		months[m] = MonthlyData{Month: m, Year: year, Days: days}
	}
	c.year = year
	c.months = months
}

// SetDisplayedMonth moves the cursor, clamped into 0..11. Pure cursor
// update; no effect on recorded data.
func (c *Calendar) SetDisplayedMonth(month int) {
	if month < 0 {
		month = 0
	}
	if month > 11 {
		month = 11
	}
	c.displayMonth = month
}

// Year returns the active year.
func (c *Calendar) Year() int { return c.year }

// DisplayedMonth returns the cursor position (0..11).
func (c *Calendar) DisplayedMonth() int { return c.displayMonth }

// Month returns a copy of one month's data. ok is false when the index
// is out of range or the grid is not populated; callers get an empty
// view, not an error.
func (c *Calendar) Month(index int) (MonthlyData, bool) {
	if index < 0 || index >= len(c.months) {
		return MonthlyData{}, false
	}
	return copyMonth(c.months[index]), true
}

// Months returns a deep copy of the full grid.
func (c *Calendar) Months() []MonthlyData {
	out := make([]MonthlyData, len(c.months))
	for i, m := range c.months {
		out[i] = copyMonth(m)
	}
	return out
}

// Replace swaps in externally supplied months (snapshot import). The
// caller owns validation; Replace keeps whatever it is given so that an
// imported snapshot round-trips byte-for-byte.
func (c *Calendar) Replace(year, displayMonth int, months []MonthlyData) {
	c.year = year
	c.months = months
	c.SetDisplayedMonth(displayMonth)
}

// RecordDayStatus advances the targeted day through the status cycle,
// recomputes the month's completion flag, and auto-advances the cursor
// when the displayed month just completed. Out-of-range targets are
// no-ops. Returns true when anything changed.
func (c *Calendar) RecordDayStatus(month, dayIndex int) bool {
	if month < 0 || month >= len(c.months) {
		return false
	}
	days := c.months[month].Days
	if dayIndex < 0 || dayIndex >= len(days) {
		return false
	}
	days[dayIndex].Status = Advance(days[dayIndex].Status)
	c.months[month].Completed = c.months[month].allRecorded()
	c.maybeAdvanceCursor(month)
	return true
}

// AutoFillPastDays applies the end-of-day default policy for the month
// containing ref: every day strictly before ref's day-of-month that is
// still unset becomes normal, and ref's own day becomes normal once the
// local hour reaches AutoFillHour. Afterward completion is recomputed
// and the cursor auto-advance rule applies. Returns true when any day
// was filled.
//
// This runs only against ref's month in ref's year; if the calendar is
// showing a different year nothing matches and nothing changes.
func (c *Calendar) AutoFillPastDays(ref time.Time) bool {
	if ref.Year() != c.year {
		return false
	}
	month := int(ref.Month()) - 1
	if month < 0 || month >= len(c.months) {
		return false
	}
	today := ref.Day()
	changed := false
	days := c.months[month].Days
	for i := range days {
		if days[i].Status != StatusUnset {
			continue
		}
		dayNum := i + 1
		if dayNum < today || (dayNum == today && ref.Hour() >= AutoFillHour) {
			days[i].Status = StatusNormal
			changed = true
		}
	}
	if changed {
		c.months[month].Completed = c.months[month].allRecorded()
		c.maybeAdvanceCursor(month)
	}
	return changed
}

// maybeAdvanceCursor moves the display to the next month when the given
// month just completed, is the one being displayed, and is not December.
// A deliberate UX shortcut: the operator never has to navigate off a
// finished month by hand.
func (c *Calendar) maybeAdvanceCursor(month int) {
	if c.months[month].Completed && month == c.displayMonth && month < 11 {
		c.displayMonth = month + 1
	}
}

func copyMonth(m MonthlyData) MonthlyData {
	out := m
	out.Days = make([]DailyStatistic, len(m.Days))
	copy(out.Days, m.Days)
	return out
}
