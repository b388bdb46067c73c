package board

import (
	"testing"
	"time"
)

// =============================================================================
// GRID CONSTRUCTION
// =============================================================================

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 1, 29}, // leap February
		{2023, 1, 28},
		{2026, 0, 31},
		{2026, 3, 30},
		{2026, 11, 31},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.year, c.month); got != c.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestNewCalendar_TwelveUnsetMonths(t *testing.T) {
	// GIVEN/WHEN: A fresh calendar for 2026
	// THEN: Twelve months, correct day counts, everything unset

	c := NewCalendar(2026, 0)
	months := c.Months()
	if len(months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(months))
	}
	for m, md := range months {
		if md.Month != m || md.Year != 2026 {
			t.Errorf("month %d: bad identity %+v", m, md)
		}
		if len(md.Days) != DaysInMonth(2026, m) {
			t.Errorf("month %d: %d days, want %d", m, len(md.Days), DaysInMonth(2026, m))
		}
		if md.Completed {
			t.Errorf("month %d: fresh month marked completed", m)
		}
		for _, d := range md.Days {
			if d.Status != StatusUnset {
				t.Fatalf("month %d day %d: not unset", m, d.Day)
			}
		}
	}
}

func TestSetYear_SameYearKeepsData(t *testing.T) {
	c := NewCalendar(2026, 0)
	c.RecordDayStatus(0, 0)

	c.SetYear(2026)
	m, _ := c.Month(0)
	if m.Days[0].Status != StatusNormal {
		t.Error("re-activating the same year must keep recorded data")
	}

	c.SetYear(2027)
	m, _ = c.Month(0)
	if m.Days[0].Status != StatusUnset {
		t.Error("activating a different year must rebuild the grid")
	}
}

func TestSetDisplayedMonth_Clamped(t *testing.T) {
	c := NewCalendar(2026, 5)
	c.SetDisplayedMonth(-3)
	if c.DisplayedMonth() != 0 {
		t.Errorf("negative month: got %d, want 0", c.DisplayedMonth())
	}
	c.SetDisplayedMonth(99)
	if c.DisplayedMonth() != 11 {
		t.Errorf("oversized month: got %d, want 11", c.DisplayedMonth())
	}
}

func TestMonth_OutOfRange(t *testing.T) {
	c := NewCalendar(2026, 0)
	if _, ok := c.Month(-1); ok {
		t.Error("negative index should report ok=false")
	}
	if _, ok := c.Month(12); ok {
		t.Error("index 12 should report ok=false")
	}
}

// =============================================================================
// DAY RECORDING AND COMPLETION
// =============================================================================

func TestRecordDayStatus_CyclesAndCompletes(t *testing.T) {
	// GIVEN: February 2026 (28 days) with 27 days recorded normal
	// WHEN: Recording the last day
	// THEN: The month flips to completed

	c := NewCalendar(2026, 1)
	for d := 0; d < 27; d++ {
		c.RecordDayStatus(1, d)
	}
	m, _ := c.Month(1)
	if m.Completed {
		t.Fatal("month must not complete with one day unset")
	}

	c.RecordDayStatus(1, 27)
	m, _ = c.Month(1)
	if !m.Completed {
		t.Fatal("month must complete once every day is recorded")
	}
}

func TestRecordDayStatus_BackToUnsetClearsCompletion(t *testing.T) {
	c := NewCalendar(2026, 1)
	for d := 0; d < 28; d++ {
		c.RecordDayStatus(1, d)
	}
	// Cycle day 1 three more times: normal -> non-absent -> absent -> unset.
	c.RecordDayStatus(1, 0)
	c.RecordDayStatus(1, 0)
	c.RecordDayStatus(1, 0)

	m, _ := c.Month(1)
	if m.Days[0].Status != StatusUnset {
		t.Fatalf("expected day back to unset, got %q", m.Days[0].Status)
	}
	if m.Completed {
		t.Error("completion must clear when a day returns to unset")
	}
}

func TestRecordDayStatus_OutOfRangeNoOp(t *testing.T) {
	c := NewCalendar(2026, 0)
	if c.RecordDayStatus(12, 0) {
		t.Error("month out of range must be a no-op")
	}
	if c.RecordDayStatus(0, 31) {
		t.Error("day out of range must be a no-op")
	}
}

func TestCompletion_AdvancesDisplayedMonth(t *testing.T) {
	// GIVEN: January displayed
	// WHEN: January completes
	// THEN: The cursor moves to February

	c := NewCalendar(2026, 0)
	for d := 0; d < 31; d++ {
		c.RecordDayStatus(0, d)
	}
	if c.DisplayedMonth() != 1 {
		t.Errorf("cursor should auto-advance to 1, got %d", c.DisplayedMonth())
	}
}

func TestCompletion_NoAdvanceWhenNotDisplayed(t *testing.T) {
	// Completing a month the kiosk is not showing leaves the cursor alone.
	c := NewCalendar(2026, 5)
	for d := 0; d < 31; d++ {
		c.RecordDayStatus(0, d)
	}
	if c.DisplayedMonth() != 5 {
		t.Errorf("cursor should stay on 5, got %d", c.DisplayedMonth())
	}
}

func TestCompletion_DecemberStaysPut(t *testing.T) {
	c := NewCalendar(2026, 11)
	for d := 0; d < 31; d++ {
		c.RecordDayStatus(11, d)
	}
	if c.DisplayedMonth() != 11 {
		t.Errorf("December has no successor; cursor got %d", c.DisplayedMonth())
	}
}

// =============================================================================
// AUTO-FILL
// =============================================================================

func TestAutoFill_PastDaysOnly_Before16(t *testing.T) {
	// GIVEN: March 15, 2026 at 10:00
	// WHEN: Auto-filling
	// THEN: Days 1-14 become normal, day 15 and later stay unset

	c := NewCalendar(2026, 2)
	ref := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	if !c.AutoFillPastDays(ref) {
		t.Fatal("expected changes")
	}

	m, _ := c.Month(2)
	for i, d := range m.Days {
		switch {
		case i < 14 && d.Status != StatusNormal:
			t.Fatalf("day %d should be normal, got %q", d.Day, d.Status)
		case i >= 14 && d.Status != StatusUnset:
			t.Fatalf("day %d should stay unset, got %q", d.Day, d.Status)
		}
	}
}

func TestAutoFill_IncludesToday_At16(t *testing.T) {
	c := NewCalendar(2026, 2)
	ref := time.Date(2026, time.March, 15, 16, 0, 0, 0, time.UTC)
	c.AutoFillPastDays(ref)

	m, _ := c.Month(2)
	if m.Days[14].Status != StatusNormal {
		t.Errorf("today at 16:00 should be filled, got %q", m.Days[14].Status)
	}
	if m.Days[15].Status != StatusUnset {
		t.Errorf("tomorrow must stay unset, got %q", m.Days[15].Status)
	}
}

func TestAutoFill_PreservesRecordedDays(t *testing.T) {
	// A day already recorded absent is never overwritten.
	c := NewCalendar(2026, 2)
	c.RecordDayStatus(2, 4) // -> normal
	c.RecordDayStatus(2, 4) // -> non-absent
	c.RecordDayStatus(2, 4) // -> absent

	c.AutoFillPastDays(time.Date(2026, time.March, 20, 9, 0, 0, 0, time.UTC))
	m, _ := c.Month(2)
	if m.Days[4].Status != StatusAbsent {
		t.Errorf("recorded day overwritten: %q", m.Days[4].Status)
	}
}

func TestAutoFill_Idempotent(t *testing.T) {
	c := NewCalendar(2026, 2)
	ref := time.Date(2026, time.March, 15, 17, 0, 0, 0, time.UTC)
	if !c.AutoFillPastDays(ref) {
		t.Fatal("first fill should change state")
	}
	if c.AutoFillPastDays(ref) {
		t.Error("second fill with same ref must be a no-op")
	}
}

func TestAutoFill_DifferentYearNoOp(t *testing.T) {
	c := NewCalendar(2026, 0)
	if c.AutoFillPastDays(time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC)) {
		t.Error("a reference outside the active year must not touch the grid")
	}
}

func TestAutoFill_CompletesMonthAndAdvancesCursor(t *testing.T) {
	// GIVEN: January displayed, nothing recorded
	// WHEN: Auto-filling from Feb 1 would not match (different month), so
	//       fill from Jan 31 at 16:00 instead
	// THEN: January completes and the cursor advances to February

	c := NewCalendar(2026, 0)
	c.AutoFillPastDays(time.Date(2026, time.January, 31, 16, 30, 0, 0, time.UTC))

	m, _ := c.Month(0)
	if !m.Completed {
		t.Fatal("January should be fully filled and completed")
	}
	if c.DisplayedMonth() != 1 {
		t.Errorf("cursor should advance to February, got %d", c.DisplayedMonth())
	}
}
