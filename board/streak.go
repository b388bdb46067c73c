/*
streak.go - Consecutive no-incident day counter

The streak walks backward from the most recently recorded day of the
displayed month through earlier months of the same year, counting normal
days until the first absent or non-absent day, or January 1st.

Two observed behaviors are preserved exactly:

  - The boundary in the displayed month is the COUNT of recorded days,
    not the index of the last recorded one. Earlier months are scanned
    in full.
  - Unset days are transparent: they neither extend nor break the
    streak. (Arguably a reporting gap should not count as safe; kept
    as-is pending a product decision, and pinned by a test.)
*/
package board

// Streak returns the current no-incident run length for the calendar.
func (c *Calendar) Streak() int {
	streak := 0
	for m := c.displayMonth; m >= 0; m-- {
		month, ok := c.Month(m)
		if !ok {
			continue
		}
		boundary := len(month.Days)
		if m == c.displayMonth {
			boundary = month.recordedDays()
		}
		for d := boundary - 1; d >= 0; d-- {
			switch month.Days[d].Status {
			case StatusNormal:
				streak++
			case StatusAbsent, StatusNonAbsent:
				return streak
			}
		}
	}
	return streak
}
